package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{
		ID:       "11111111-2222-3333-4444-555555555555",
		FullName: "Alice Example",
	}

	tokenString, err := GenerateToken(payload, testSecret, UserIdentityExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := ParseToken(tokenString, testSecret)
	require.NoError(t, err)
	require.Equal(t, payload.ID, parsed.ID)
	require.Equal(t, payload.FullName, parsed.FullName)
	require.Equal(t, TokenIssuer, parsed.Issuer)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(&Payload{ID: "u1"}, testSecret, UserIdentityExpiration)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, "another-secret")
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tokenString, err := GenerateToken(&Payload{ID: "u1"}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	require.Error(t, err)
}

package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// solve brute-forces a counter whose SHA256(nonce+counter) hash carries the
// required number of leading zeros. Difficulty 1 keeps this instant.
func solve(nonce string, difficulty int) string {
	prefix := strings.Repeat("0", difficulty)
	for counter := 0; ; counter++ {
		c := fmt.Sprintf("%d", counter)
		hash := sha256.Sum256([]byte(nonce + c))
		if strings.HasPrefix(hex.EncodeToString(hash[:]), prefix) {
			return c
		}
	}
}

func TestValidateProof(t *testing.T) {
	m := NewManager(1)

	nonce := m.GenerateNonce()
	counter := solve(nonce, 1)

	token, err := m.ValidateProof(nonce, counter)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("nonce is consumed", func(t *testing.T) {
		_, err := m.ValidateProof(nonce, counter)
		require.Error(t, err)
	})
}

func TestValidateProofRejectsBadCounter(t *testing.T) {
	m := NewManager(4)

	nonce := m.GenerateNonce()

	// A wrong counter is overwhelmingly unlikely to meet difficulty 4.
	_, err := m.ValidateProof(nonce, "not-the-answer")
	require.Error(t, err)
}

func TestValidateProofRejectsUnknownNonce(t *testing.T) {
	m := NewManager(1)

	_, err := m.ValidateProof("never-issued", "0")
	require.Error(t, err)
}

func TestCheckProofToken(t *testing.T) {
	m := NewManager(1)

	nonce := m.GenerateNonce()
	token, err := m.ValidateProof(nonce, solve(nonce, 1))
	require.NoError(t, err)

	t.Run("header token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/signup", nil)
		r.Header.Set(TokenHeaderKey, token)
		require.True(t, m.CheckProofToken(r))
	})

	t.Run("query token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/signup?pow_token="+token, nil)
		require.True(t, m.CheckProofToken(r))
	})

	t.Run("missing token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/signup", nil)
		require.False(t, m.CheckProofToken(r))
	})

	t.Run("unknown token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/signup", nil)
		r.Header.Set(TokenHeaderKey, "forged")
		require.False(t, m.CheckProofToken(r))
	})
}

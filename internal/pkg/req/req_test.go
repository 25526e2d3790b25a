package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"letteram/internal/pkg/errs"
)

type bindTarget struct {
	Text string `json:"text"`
}

func bind(t *testing.T, contentType, body string) *errs.CustomError {
	t.Helper()

	r := httptest.NewRequest("POST", "/api/messages/send/abc", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()

	var dst bindTarget
	return BindJSON(w, r, &dst)
}

func TestBindJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		require.Nil(t, bind(t, "application/json", `{"text":"hi"}`))
	})

	t.Run("charset parameter accepted", func(t *testing.T) {
		require.Nil(t, bind(t, "application/json; charset=utf-8", `{"text":"hi"}`))
	})

	t.Run("wrong content type", func(t *testing.T) {
		customErr := bind(t, "text/plain", `{"text":"hi"}`)
		require.NotNil(t, customErr)
		require.Equal(t, errs.ErrUnsupportedMediaType, customErr.Code)
	})

	t.Run("missing content type", func(t *testing.T) {
		customErr := bind(t, "", `{"text":"hi"}`)
		require.NotNil(t, customErr)
		require.Equal(t, errs.ErrUnsupportedMediaType, customErr.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		customErr := bind(t, "application/json", `{"text":`)
		require.NotNil(t, customErr)
		require.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		customErr := bind(t, "application/json", `{"text":"hi","admin":true}`)
		require.NotNil(t, customErr)
		require.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
	})

	t.Run("trailing content", func(t *testing.T) {
		customErr := bind(t, "application/json", `{"text":"hi"}{"text":"again"}`)
		require.NotNil(t, customErr)
		require.Equal(t, errs.ErrExtraContentInBody, customErr.Code)
	})
}

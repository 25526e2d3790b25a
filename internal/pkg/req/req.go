/*
Package req provides helper functions for HTTP request parsing and data binding.

Message sends may carry several base64-encoded images inline, so the JSON body
limit is sized for the image cap rather than for typical API payloads.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"letteram/internal/pkg/errs"
)

// MaxJSONBody is the upper bound for a JSON request body. Ten 5 MB images
// expand by roughly 4/3 under base64, so 80 MB leaves headroom for the rest
// of the payload.
const MaxJSONBody int64 = 80 << 20

// BindJSON binds the JSON request body to dst, enforcing the Content-Type,
// the body size limit, and the absence of unknown or trailing content.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

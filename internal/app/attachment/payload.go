package attachment

import (
	"encoding/base64"
	"strings"

	"letteram/internal/pkg/errs"
)

const (
	// MaxImageSizeMB is the maximum allowed decoded image size in megabytes.
	MaxImageSizeMB = 5

	// MaxImageSize is the maximum allowed decoded image size in bytes.
	MaxImageSize = MaxImageSizeMB * 1024 * 1024
)

// AllowedMIMETypes defines the set of permitted image MIME types.
var AllowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// MIMEToExt maps allowed MIME types to the file extension used in object keys.
var MIMEToExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// isStoredURL reports whether the payload already references a stored object
// rather than carrying inline image data.
func isStoredURL(payload string) bool {
	return strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://")
}

// decodeDataURI parses a "data:<mime>;base64,<data>" payload, validating the
// MIME type against the allowed image set and the decoded size against
// MaxImageSize.
func decodeDataURI(payload string) (mimeType string, data []byte, customErr *errs.CustomError) {
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		return "", nil, errs.NewError(errs.ErrImagePayloadInvalid)
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errs.NewError(errs.ErrImagePayloadInvalid)
	}

	mimeType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, errs.NewError(errs.ErrImagePayloadInvalid)
	}

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if _, allowed := AllowedMIMETypes[mimeType]; !allowed {
		return "", nil, errs.NewError(errs.ErrImagePayloadInvalid)
	}

	// Reject oversized payloads before decoding; base64 expands by 4/3.
	if len(encoded) > (MaxImageSize/3+1)*4 {
		return "", nil, errs.NewError(errs.ErrImageTooLarge)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, errs.NewError(errs.ErrImagePayloadInvalid)
	}

	if len(data) == 0 {
		return "", nil, errs.NewError(errs.ErrImagePayloadInvalid)
	}

	if len(data) > MaxImageSize {
		return "", nil, errs.NewError(errs.ErrImageTooLarge)
	}

	return mimeType, data, nil
}

/*
Package attachment turns client-supplied image payloads into stored URLs.

Payloads arrive either as base64 data URIs, which are validated and uploaded
to the blob storage collaborator, or as http(s) URLs of already-stored
objects, which pass through untouched. A batch uploads all payloads
concurrently and is all-or-nothing: if any payload fails, the whole batch
fails and no partial URL list is ever returned.
*/
package attachment

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"letteram/internal/app/storage"
	"letteram/internal/pkg/errs"
	"letteram/internal/pkg/logx"
	"letteram/internal/pkg/randx"
)

// DefaultFolder is the object key folder used when Options carries none.
const DefaultFolder = "messages"

// Options controls where a batch's objects are stored.
type Options struct {
	// Folder is the object key prefix, e.g. "messages" or "avatars".
	Folder string
}

// Pipeline uploads image payloads to blob storage.
type Pipeline struct {
	storage storage.Service

	// uploadTimeout bounds each individual storage call.
	uploadTimeout time.Duration

	logger zerolog.Logger
}

// NewPipeline constructs a Pipeline over the given storage service. Each
// per-payload storage call is bounded by uploadTimeout.
func NewPipeline(svc storage.Service, uploadTimeout time.Duration) *Pipeline {
	return &Pipeline{
		storage:       svc,
		uploadTimeout: uploadTimeout,
		logger:        logx.Logger().With().Str("component", "AttachmentPipeline").Logger(),
	}
}

// Upload is the single-payload convenience form of UploadBatch.
func (p *Pipeline) Upload(ctx context.Context, payload string, opts Options) (string, error) {
	urls, err := p.UploadBatch(ctx, []string{payload}, opts)
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

// UploadBatch stores every payload and returns their URLs in input order,
// regardless of which concurrent upload completes first. The first failure
// cancels the remaining uploads and fails the whole batch.
func (p *Pipeline) UploadBatch(ctx context.Context, payloads []string, opts Options) ([]string, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	folder := opts.Folder
	if folder == "" {
		folder = DefaultFolder
	}

	urls := make([]string, len(payloads))

	g, gctx := errgroup.WithContext(ctx)
	for i, payload := range payloads {
		g.Go(func() error {
			url, err := p.uploadOne(gctx, folder, payload)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Warn().Err(err).Int("batch_size", len(payloads)).Msg("Image batch upload aborted.")
		return nil, err
	}

	return urls, nil
}

// uploadOne resolves a single payload to a stored URL.
func (p *Pipeline) uploadOne(ctx context.Context, folder, payload string) (string, error) {
	if isStoredURL(payload) {
		return payload, nil
	}

	mimeType, data, customErr := decodeDataURI(payload)
	if customErr != nil {
		return "", customErr
	}

	key, err := randx.ObjectKey(folder, MIMEToExt[mimeType])
	if err != nil {
		return "", errs.NewError(errs.ErrUploadFailed)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, p.uploadTimeout)
	defer cancel()

	url, err := p.storage.Upload(uploadCtx, key, mimeType, bytes.NewReader(data))
	if err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("Storage upload failed.")
		return "", errs.NewError(errs.ErrUploadFailed)
	}

	return url, nil
}

// KeyFromURL extracts the storage key from a URL previously returned by the
// pipeline. It returns "" when the URL does not point into the given storage.
func KeyFromURL(svc storage.Service, url string) string {
	base := svc.ObjectURL("")
	if base == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	return strings.TrimPrefix(url, base)
}

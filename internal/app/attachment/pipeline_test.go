package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"letteram/internal/pkg/errs"
)

// fakeStorage records uploads and serves them back under a fixed base URL.
// failOn makes the upload of a specific payload body fail, and delay slows
// every upload down to exercise the concurrent batch path.
type fakeStorage struct {
	mu      sync.Mutex
	uploads []fakeUpload
	deleted []string
	failOn  string
	delay   time.Duration
}

type fakeUpload struct {
	key      string
	mimeType string
	body     string
}

func (f *fakeStorage) Upload(ctx context.Context, key string, mimeType string, body io.Reader) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	if f.failOn != "" && string(data) == f.failOn {
		return "", errors.New("storage unavailable")
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, fakeUpload{key: key, mimeType: mimeType, body: string(data)})
	f.mu.Unlock()

	return f.ObjectURL(key), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, key)
	f.mu.Unlock()
	return nil
}

func (f *fakeStorage) ObjectURL(key string) string {
	return "https://assets.test/letteram/" + key
}

func (f *fakeStorage) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

// dataURI builds a payload carrying the given body as a PNG data URI.
func dataURI(body string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(body))
}

func TestUploadSinglePayload(t *testing.T) {
	store := &fakeStorage{}
	p := NewPipeline(store, time.Second)

	url, err := p.Upload(context.Background(), dataURI("pixels"), Options{Folder: "avatars"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://assets.test/letteram/avatars/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	require.Equal(t, 1, store.uploadCount())
	require.Equal(t, "image/png", store.uploads[0].mimeType)
	require.Equal(t, "pixels", store.uploads[0].body)
}

func TestUploadStoredURLPassesThrough(t *testing.T) {
	store := &fakeStorage{}
	p := NewPipeline(store, time.Second)

	stored := "https://assets.test/letteram/messages/abc.png"
	url, err := p.Upload(context.Background(), stored, Options{})
	require.NoError(t, err)
	require.Equal(t, stored, url)

	// No storage call is made for an already-stored object.
	require.Equal(t, 0, store.uploadCount())
}

func TestUploadBatchPreservesInputOrder(t *testing.T) {
	store := &fakeStorage{delay: 5 * time.Millisecond}
	p := NewPipeline(store, time.Second)

	payloads := make([]string, 8)
	for i := range payloads {
		payloads[i] = dataURI(fmt.Sprintf("image-%d", i))
	}
	// Interleave a stored URL to check it keeps its slot too.
	payloads[3] = "https://assets.test/letteram/messages/kept.png"

	urls, err := p.UploadBatch(context.Background(), payloads, Options{})
	require.NoError(t, err)
	require.Len(t, urls, len(payloads))

	require.Equal(t, payloads[3], urls[3])

	// Each uploaded body must map back to the URL at its input position,
	// regardless of upload completion order.
	bodyToKey := make(map[string]string)
	store.mu.Lock()
	for _, up := range store.uploads {
		bodyToKey[up.body] = up.key
	}
	store.mu.Unlock()

	for i := range payloads {
		if i == 3 {
			continue
		}
		body := fmt.Sprintf("image-%d", i)
		key, ok := bodyToKey[body]
		require.True(t, ok, "payload %d was not uploaded", i)
		require.Equal(t, store.ObjectURL(key), urls[i], "url at position %d does not match payload %d", i, i)
	}
}

func TestUploadBatchAllOrNothing(t *testing.T) {
	store := &fakeStorage{failOn: "poison"}
	p := NewPipeline(store, time.Second)

	payloads := []string{
		dataURI("fine-1"),
		dataURI("poison"),
		dataURI("fine-2"),
	}

	urls, err := p.UploadBatch(context.Background(), payloads, Options{})
	require.Error(t, err)
	require.Nil(t, urls)

	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	require.Equal(t, errs.ErrUploadFailed, customErr.Code)
}

func TestUploadBatchEmpty(t *testing.T) {
	store := &fakeStorage{}
	p := NewPipeline(store, time.Second)

	urls, err := p.UploadBatch(context.Background(), nil, Options{})
	require.NoError(t, err)
	require.Nil(t, urls)
	require.Equal(t, 0, store.uploadCount())
}

func TestUploadRejectsInvalidPayloads(t *testing.T) {
	store := &fakeStorage{}
	p := NewPipeline(store, time.Second)

	cases := []struct {
		name     string
		payload  string
		wantCode int
	}{
		{"no data prefix", "image/png;base64,aGk=", errs.ErrImagePayloadInvalid},
		{"missing comma", "data:image/png;base64", errs.ErrImagePayloadInvalid},
		{"missing encoding", "data:image/png,aGk=", errs.ErrImagePayloadInvalid},
		{"disallowed mime", "data:application/pdf;base64,aGk=", errs.ErrImagePayloadInvalid},
		{"bad base64", "data:image/png;base64,!!not-base64!!", errs.ErrImagePayloadInvalid},
		{"empty body", "data:image/png;base64,", errs.ErrImagePayloadInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Upload(context.Background(), tc.payload, Options{})
			require.Error(t, err)

			var customErr *errs.CustomError
			require.ErrorAs(t, err, &customErr)
			require.Equal(t, tc.wantCode, customErr.Code)
		})
	}

	require.Equal(t, 0, store.uploadCount())
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	store := &fakeStorage{}
	p := NewPipeline(store, time.Second)

	big := strings.Repeat("a", MaxImageSize+1)
	_, err := p.Upload(context.Background(), dataURI(big), Options{})
	require.Error(t, err)

	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	require.Equal(t, errs.ErrImageTooLarge, customErr.Code)
	require.Equal(t, 0, store.uploadCount())
}

func TestKeyFromURL(t *testing.T) {
	store := &fakeStorage{}

	t.Run("url inside storage", func(t *testing.T) {
		key := "avatars/abc123.png"
		require.Equal(t, key, KeyFromURL(store, store.ObjectURL(key)))
	})

	t.Run("foreign url", func(t *testing.T) {
		require.Equal(t, "", KeyFromURL(store, "https://elsewhere.example/pic.png"))
	})

	t.Run("empty url", func(t *testing.T) {
		require.Equal(t, "", KeyFromURL(store, ""))
	})
}

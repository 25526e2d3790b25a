package storage

import (
	"context"
	"io"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// PublicBaseURL is the externally reachable prefix under which stored
	// objects are served, e.g. "https://assets.example.com/letteram".
	PublicBaseURL string
}

// Service defines the public interface for the blob storage collaborator.
type Service interface {
	// Upload stores the object under key and returns its durable public URL.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error

	// ObjectURL returns the public URL for a stored key without any remote call.
	ObjectURL(key string) string
}

// NewService is the factory function for Service. It initializes and returns
// a concrete implementation based on the provided configuration.
func NewService(cfg ServiceConfig) (Service, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(cfg)
}

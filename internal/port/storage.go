package port

import (
	"context"
	"io"
)

// StoreInput encapsulates the parameters needed to store an uploaded
// document.
type StoreInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// StoreOutput contains the result of a successful store.
type StoreOutput struct {
	Location string
	ETag     string
}

// DocumentStorage abstracts where uploaded files are kept. Analyses only
// reference stored objects by key; retrieval for audit goes through
// presigned URLs.
type DocumentStorage interface {
	Store(ctx context.Context, input StoreInput) (*StoreOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}

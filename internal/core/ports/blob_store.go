package ports

import "context"

// BlobStore is the durable object storage the submission pipeline uploads
// normalized images to. Put returns a public, fetchable URL for the object.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

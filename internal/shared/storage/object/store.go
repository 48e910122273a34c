package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving uploaded résumé files.
type ObjectStore interface {
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, storageKey string) error
}

// SniffLen is how many leading bytes stores read to detect the content type.
const SniffLen = 3072

package firebase

import (
	"context"
	"io"
)

// StorageClient abstracts Firebase Storage operations for dependency injection and testing.
type StorageClient interface {
	UploadProductImage(ctx context.Context, r io.Reader, productID, contentType, ext string) (string, error)
	DeleteFile(ctx context.Context, objectPath string) error
	Bucket() string
}

var _ StorageClient = (*Storage)(nil)

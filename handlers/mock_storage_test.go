package handlers

import (
	"context"
	"fmt"
	"io"
)

type mockStorage struct {
	UploadProductImageFn func(r io.Reader, productID, contentType, ext string) (string, error)
	DeleteFileFn         func(objectPath string) error
	DeleteFileCalls      []string
	UploadCallCount      int
	Uploaded             []byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) UploadProductImage(_ context.Context, r io.Reader, productID, contentType, ext string) (string, error) {
	m.UploadCallCount++
	if m.UploadProductImageFn != nil {
		return m.UploadProductImageFn(r, productID, contentType, ext)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.Uploaded = data
	return fmt.Sprintf("https://storage.googleapis.com/test-bucket/products/%s_image%d%s", productID, m.UploadCallCount, ext), nil
}

func (m *mockStorage) DeleteFile(_ context.Context, objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}

func (m *mockStorage) Bucket() string {
	return "test-bucket"
}

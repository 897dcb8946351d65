package firebase

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

// clientOptions turns GOOGLE_APPLICATION_CREDENTIALS into client options.
// The value may hold the credentials JSON itself or a path to it.
func clientOptions(credentials string, log *zap.Logger) []option.ClientOption {
	credentials = strings.TrimSpace(credentials)
	switch {
	case credentials == "":
		log.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, using default credentials")
		return nil
	case strings.HasPrefix(credentials, "{"):
		log.Info("using Firebase credentials from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credentials))}
	default:
		log.Info("using Firebase credentials from file", zap.String("path", credentials))
		return []option.ClientOption{option.WithCredentialsFile(credentials)}
	}
}

// Storage uploads product photos to a Firebase Storage bucket.
type Storage struct {
	app    *firebase.App
	bucket string
	log    *zap.Logger
}

// Init connects to Firebase and returns a client for bucket.
func Init(ctx context.Context, credentials, bucket string, log *zap.Logger) (*Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}

	app, err := firebase.NewApp(ctx, nil, clientOptions(credentials, log)...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	log.Info("Firebase initialized", zap.String("bucket", bucket))
	return &Storage{app: app, bucket: bucket, log: log}, nil
}

func (s *Storage) handle(ctx context.Context) (*storage.BucketHandle, error) {
	client, err := s.app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage client: %w", err)
	}
	return client.Bucket(s.bucket)
}

func objectPath(productID, ext string) string {
	return path.Join("products", fmt.Sprintf("%s_%s%s",
		sanitizeFilename(productID),
		uuid.New().String()[:8],
		ext,
	))
}

// PublicURL is where a stored object can be fetched without credentials.
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// UploadProductImage stores the photo for productID and returns its public URL.
func (s *Storage) UploadProductImage(ctx context.Context, r io.Reader, productID, contentType, ext string) (string, error) {
	bucket, err := s.handle(ctx)
	if err != nil {
		return "", err
	}

	objPath := objectPath(productID, ext)
	obj := bucket.Object(objPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	// Make object publicly readable so the URL works without authentication
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		s.log.Warn("failed to set public ACL", zap.String("object", objPath), zap.Error(err))
	}

	return PublicURL(s.bucket, objPath), nil
}

// DeleteFile deletes an object given its path inside the bucket.
func (s *Storage) DeleteFile(ctx context.Context, objectPath string) error {
	bucket, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if err := bucket.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}

	s.log.Info("deleted file", zap.String("object", objectPath), zap.String("bucket", s.bucket))
	return nil
}

func (s *Storage) Bucket() string {
	return s.bucket
}

package utils

import (
	"fmt"
	"strings"
)

const storagePrefix = "https://storage.googleapis.com/"

// ExtractObjectPath returns the object path of a public Firebase Storage URL
// inside bucket. URLs pointing elsewhere, including other buckets, are rejected.
func ExtractObjectPath(url, bucket string) (string, error) {
	if !strings.HasPrefix(url, storagePrefix) {
		return "", fmt.Errorf("invalid URL")
	}

	parts := strings.SplitN(strings.TrimPrefix(url, storagePrefix), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid URL format")
	}
	if bucket != "" && parts[0] != bucket {
		return "", fmt.Errorf("URL belongs to bucket %q", parts[0])
	}

	return parts[1], nil
}

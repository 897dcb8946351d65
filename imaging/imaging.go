// Package imaging accepts product photos from the admin UI: camera frames
// sent as data URLs, uploaded files, or remote image URLs.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"precojusto-backend/utils"
)

// ErrInvalidImage wraps every rejection of client-provided image data.
var ErrInvalidImage = errors.New("invalid image")

// ErrFetchFailed reports that a remote photo could not be downloaded.
var ErrFetchFailed = errors.New("image download failed")

// Image is a decoded, content-checked photo.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Sniff checks data against the allowed image types by content, ignoring
// whatever type the client claimed.
func Sniff(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	if len(data) > utils.MaxUploadSize {
		return Image{}, fmt.Errorf("%w: %d bytes exceeds maximum allowed size of 5MB", ErrInvalidImage, len(data))
	}

	mt := mimetype.Detect(data)
	contentType, _, _ := strings.Cut(mt.String(), ";")
	if !utils.AllowedImageContentTypes[contentType] {
		return Image{}, fmt.Errorf("%w: type '%s' is not allowed; allowed types: image/jpeg, image/png, image/webp, image/gif", ErrInvalidImage, contentType)
	}
	return Image{Data: data, ContentType: contentType, Extension: mt.Extension()}, nil
}

// DecodeDataURL parses a base64 "data:image/...;base64," URL, the format a
// captured camera frame arrives in.
func DecodeDataURL(raw string) (Image, error) {
	raw = strings.TrimSpace(raw)
	header, payload, ok := strings.Cut(raw, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return Image{}, fmt.Errorf("%w: not a data URL", ErrInvalidImage)
	}
	if !strings.HasSuffix(header, ";base64") {
		return Image{}, fmt.Errorf("%w: data URL must be base64 encoded", ErrInvalidImage)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > utils.MaxUploadSize+3 {
		return Image{}, fmt.Errorf("%w: image exceeds maximum allowed size of 5MB", ErrInvalidImage)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: bad base64 payload", ErrInvalidImage)
	}
	return Sniff(data)
}

// ReadMultipart reads an uploaded file after the size and declared type
// checks, then sniffs the actual content.
func ReadMultipart(fh *multipart.FileHeader) (Image, error) {
	if err := utils.ValidateFileUpload(fh); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	f, err := fh.Open()
	if err != nil {
		return Image{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, utils.MaxUploadSize+1))
	if err != nil {
		return Image{}, err
	}
	return Sniff(data)
}

// Reader streams the image bytes.
func (img Image) Reader() io.Reader {
	return bytes.NewReader(img.Data)
}

// DataURL encodes the image inline, used when no bucket is configured.
func (img Image) DataURL() string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

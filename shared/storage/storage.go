package storage

import (
	"context"
	"errors"
	"fmt"
)

// MaxImageSize is the largest accepted upload, in bytes.
const MaxImageSize = 5 * 1024 * 1024

// Upload constraint errors, detected locally before any network call.
var (
	ErrImageTooLarge        = errors.New("image exceeds the 5 MB size limit")
	ErrUnsupportedImageType = errors.New("unsupported image type; only JPEG, PNG, WebP and GIF are allowed")
)

// imageExtensions doubles as the content-type allow-list.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// MediaStore uploads images to external object storage and deletes them
// again when the owning record moves on. Remove returns an error rather
// than swallowing it so that every call site makes the log-and-discard
// decision explicitly.
type MediaStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

// ValidateImage checks the upload constraints without touching the network.
func ValidateImage(size int64, contentType string) error {
	if size > MaxImageSize {
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, size)
	}

	if _, ok := imageExtensions[contentType]; !ok {
		return fmt.Errorf("%w: got %q", ErrUnsupportedImageType, contentType)
	}

	return nil
}

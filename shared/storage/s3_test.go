package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *S3MediaStore {
	logger := zerolog.Nop()
	return &S3MediaStore{
		cfg: Config{
			Bucket:        "portfolio",
			PublicBaseURL: "https://media.example.com",
			Folder:        "portfolio-projects",
		},
		logger: &logger,
	}
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(100, "image/png"))
	assert.NoError(t, ValidateImage(MaxImageSize, "image/webp"))

	assert.ErrorIs(t, ValidateImage(MaxImageSize+1, "image/png"), ErrImageTooLarge)
	assert.ErrorIs(t, ValidateImage(100, "application/pdf"), ErrUnsupportedImageType)
	assert.ErrorIs(t, ValidateImage(100, ""), ErrUnsupportedImageType)
}

// Store must reject constraint violations before touching the network; the
// store under test has no usable client, so reaching it would panic.
func TestStore_RejectsLocallyBeforeUpload(t *testing.T) {
	store := newTestStore()

	_, err := store.Store(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	_, err = store.Store(context.Background(), bytes.Repeat([]byte{0xff}, MaxImageSize+1), "image/jpeg")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestObjectKeyFromURL(t *testing.T) {
	store := newTestStore()

	key, ok := store.objectKeyFromURL("https://media.example.com/portfolio-projects/project-1-abc.png")
	require.True(t, ok)
	assert.Equal(t, "portfolio-projects/project-1-abc.png", key)

	_, ok = store.objectKeyFromURL("https://elsewhere.example.com/portfolio-projects/project-1-abc.png")
	assert.False(t, ok)

	_, ok = store.objectKeyFromURL("https://media.example.com/other-folder/file.png")
	assert.False(t, ok)

	_, ok = store.objectKeyFromURL("")
	assert.False(t, ok)
}

func TestObjectKey_NamespacedAndTyped(t *testing.T) {
	store := newTestStore()

	key := store.objectKey("image/webp")
	assert.Contains(t, key, "portfolio-projects/project-")
	assert.Contains(t, key, ".webp")
}

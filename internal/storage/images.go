package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/google/uuid"
)

var ErrNotFound = apierror.ErrNotFound

// MaxImageSize caps a single listing photo.
const MaxImageSize = 5 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var errUnsupportedType = errors.New("unsupported image type")

// NewImageKey returns a fresh object key for an upload of contentType.
func NewImageKey(contentType string) (string, error) {
	ext, ok := imageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %w %q", apierror.ErrValidation, errUnsupportedType, contentType)
	}
	return uuid.NewString() + ext, nil
}

// ValidKey reports whether key looks like one NewImageKey produced.
func ValidKey(key string) bool {
	ext := path.Ext(key)
	id := strings.TrimSuffix(key, ext)
	if len(id) != 36 {
		return false
	}
	if _, err := uuid.Parse(id); err != nil {
		return false
	}
	for _, e := range imageTypes {
		if e == ext {
			return true
		}
	}
	return false
}

// Package storage holds what the image store backends share.
package storage

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/menuhub/restaurant-api/internal/core/domain"
)

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ObjectName returns a fresh, collision-free name "<key>/<uuid><ext>" for an
// uploaded image together with its content type. Non-image extensions are
// rejected with domain.ErrValidation.
func ObjectName(key, filename string) (name, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageExtensions[ext]
	if !ok {
		return "", "", domain.ValidationError("unsupported image type %q", ext)
	}
	return path.Join(key, uuid.NewString()+ext), contentType, nil
}

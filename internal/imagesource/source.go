// Package imagesource provides read-only access to vehicle images. The
// pipeline never writes through this interface; image ownership stays
// with the upload layer.
package imagesource

import (
	"context"
	"path/filepath"
	"strings"
)

// Image is one fetched photograph.
type Image struct {
	Bytes    []byte
	MIMEType string
}

// Source fetches image bytes by reference.
type Source interface {
	Fetch(ctx context.Context, ref string) (Image, error)
}

// mimeByExt maps the image extensions the inference provider accepts.
func mimeByExt(ref string) string {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}

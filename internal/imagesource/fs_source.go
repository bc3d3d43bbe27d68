package imagesource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSSource serves images from a directory tree. References are paths
// relative to the root; escapes above the root are rejected.
type FSSource struct {
	root string
}

func NewFSSource(root string) *FSSource {
	return &FSSource{root: root}
}

func (s *FSSource) Fetch(ctx context.Context, ref string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return Image{}, fmt.Errorf("imagesource: reference %q escapes root", ref)
	}
	data, err := os.ReadFile(filepath.Join(s.root, clean))
	if err != nil {
		return Image{}, fmt.Errorf("imagesource: read %q: %w", ref, err)
	}
	return Image{Bytes: data, MIMEType: mimeByExt(clean)}, nil
}

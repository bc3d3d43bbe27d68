package imagesource

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFSSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	want := []byte("jpeg-bytes")
	if err := os.WriteFile(filepath.Join(dir, "front.jpg"), want, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src := NewFSSource(dir)
	img, err := src.Fetch(context.Background(), "front.jpg")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(img.Bytes, want) {
		t.Fatalf("bytes = %q, want %q", img.Bytes, want)
	}
	if img.MIMEType != "image/jpeg" {
		t.Fatalf("mime = %q, want image/jpeg", img.MIMEType)
	}
}

func TestFSSource_RejectsEscapingRefs(t *testing.T) {
	src := NewFSSource(t.TempDir())
	for _, ref := range []string{"../secret.jpg", "/etc/passwd", "a/../../b.png"} {
		if _, err := src.Fetch(context.Background(), ref); err == nil {
			t.Fatalf("ref %q escaped the root", ref)
		}
	}
}

func TestMIMEByExt(t *testing.T) {
	cases := map[string]string{
		"a.png":  "image/png",
		"b.WEBP": "image/webp",
		"c.heic": "image/heic",
		"d.jpg":  "image/jpeg",
		"e":      "image/jpeg",
	}
	for ref, want := range cases {
		if got := mimeByExt(ref); got != want {
			t.Fatalf("mimeByExt(%q) = %q, want %q", ref, got, want)
		}
	}
}

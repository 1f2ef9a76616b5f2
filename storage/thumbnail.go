package storage

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Thumbnailer renders a preview image for an already stored file. Generate
// returns the relative path of the thumbnail, or an error when the file is
// not a supported image type.
type Thumbnailer interface {
	Generate(path, mimeType string) (string, error)
}

type ImageThumbnailer struct {
	store *LocalStore
	width int
}

func NewImageThumbnailer(store *LocalStore, width int) *ImageThumbnailer {
	if width <= 0 {
		width = 320
	}
	return &ImageThumbnailer{store: store, width: width}
}

func (t *ImageThumbnailer) Generate(path, mimeType string) (string, error) {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/png":
	default:
		return "", fmt.Errorf("unsupported mime type %q", mimeType)
	}

	img, err := imaging.Open(t.store.AbsPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}

	// Height 0 keeps the aspect ratio.
	thumb := imaging.Resize(img, t.width, 0, imaging.Lanczos)

	relPath := strings.TrimSuffix(path, "."+extOf(path)) + "_thumb.jpg"
	if err := imaging.Save(thumb, t.store.AbsPath(relPath), imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return relPath, nil
}

func extOf(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return ""
}

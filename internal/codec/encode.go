package codec

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// KindFromPath maps a file extension to an encoder name.
func KindFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("codec: no encoder for %q", filepath.Ext(path))
	}
}

// EncodeImage writes img to w. quality is used by JPEG only and is clamped
// to 1-100.
func EncodeImage(w io.Writer, img image.Image, kind string, quality int) error {
	var err error
	switch kind {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		quality = max(1, min(quality, 100))
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("codec: unknown encoder %q", kind)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", kind, err)
	}
	return nil
}

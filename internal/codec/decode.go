// Package codec decodes and encodes the images matflat works on, and reads
// and writes the raw flattened output together with its JSON sidecar.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyData is returned when there is nothing to decode.
var ErrEmptyData = errors.New("codec: empty data")

// Decode decodes an image from memory, sniffing the format. It returns the
// registered format name ("png", "jpeg", "gif", "bmp", "tiff", "webp").
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("codec: decode: %w", err)
	}
	return img, name, nil
}

package codec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProfile returns a minimal RGB display profile header padded to size
// bytes.
func fakeProfile(size int) []byte {
	return fakeProfileOf(size, "mntr", "RGB ")
}

func fakeProfileOf(size int, class, space string) []byte {
	p := make([]byte, size)
	binary.BigEndian.PutUint32(p[0:], uint32(size))
	p[8], p[9] = 4, 0x30
	copy(p[12:], class)
	copy(p[16:], space)
	copy(p[20:], "XYZ ")
	copy(p[36:], "acsp")
	for i := 128; i < size; i++ {
		p[i] = byte(i)
	}
	return p
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// encodeJPEGWithICC encodes img and embeds icc unless it is nil.
func encodeJPEGWithICC(t *testing.T, img image.Image, icc []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	data := buf.Bytes()
	if icc == nil {
		return data
	}

	out, err := EmbedICC(data, icc)
	require.NoError(t, err)
	return out
}

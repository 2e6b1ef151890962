package codec

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
)

func TestGetInfo_PNG(t *testing.T) {
	info, err := GetInfo(encodePNG(t, gradient(5, 3)))
	require.NoError(t, err)

	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 5, info.Width)
	assert.Equal(t, 3, info.Height)
	// Opaque images are written as 8-bit RGB and decode to *image.RGBA.
	assert.Equal(t, ir.FormatRGBA8, info.Pixel)
	assert.Equal(t, 4, info.ElemSize)
	assert.Equal(t, 20, info.Stride)
	assert.True(t, info.Contiguous)
	assert.Nil(t, info.ICC)
}

func TestGetInfo_JPEGWithICC(t *testing.T) {
	profile := fakeProfile(300)
	info, err := GetInfo(encodeJPEGWithICC(t, gradient(16, 8), profile))
	require.NoError(t, err)

	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, 16, info.Width)
	assert.Equal(t, 8, info.Height)
	// Colour JPEGs decode to YCbCr, which has no interleaved byte view.
	assert.Equal(t, ir.FormatUnknown, info.Pixel)
	assert.Zero(t, info.ElemSize)
	assert.Equal(t, profile, info.ICC)
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, _, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestEncodeImage(t *testing.T) {
	img := gradient(4, 4)
	for _, kind := range []string{"png", "jpeg", "bmp", "tiff"} {
		t.Run(kind, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeImage(&buf, img, kind, 95))

			decoded, name, err := Decode(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, kind, name)
			assert.Equal(t, image.Rect(0, 0, 4, 4), decoded.Bounds())
		})
	}

	assert.Error(t, EncodeImage(&bytes.Buffer{}, img, "gif", 0))
}

func TestKindFromPath(t *testing.T) {
	for path, want := range map[string]string{
		"a.png": "png", "b.JPG": "jpeg", "c.jpeg": "jpeg", "d.bmp": "bmp", "e.tif": "tiff",
	} {
		got, err := KindFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := KindFromPath("x.webp")
	assert.Error(t, err)
}

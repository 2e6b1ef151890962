package ir

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrUnsupportedImage is returned for image types that do not expose a
// byte-addressable pixel buffer.
var ErrUnsupportedImage = errors.New("ir: unsupported image type")

// FromImage borrows the pixel memory of a standard library image as a View.
// Sub-images keep the parent stride, so they usually come back as
// non-contiguous views. Nothing is copied.
func FromImage(img image.Image) (*View, Format, error) {
	var (
		pix    []byte
		stride int
		rect   image.Rectangle
		f      Format
	)
	switch m := img.(type) {
	case *image.Gray:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatGray8
	case *image.Gray16:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatGray16
	case *image.Alpha:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatAlpha8
	case *image.RGBA:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatRGBA8
	case *image.NRGBA:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatNRGBA8
	case *image.CMYK:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatCMYK8
	case *image.RGBA64:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatRGBA16
	case *image.NRGBA64:
		pix, stride, rect, f = m.Pix, m.Stride, m.Rect, FormatNRGBA16
	default:
		return nil, FormatUnknown, fmt.Errorf("%w: %T", ErrUnsupportedImage, img)
	}

	v, err := NewView(pix, rect.Dy(), rect.Dx(), f.ElemSize(), stride)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("wrapping %T: %w", img, err)
	}
	return v, f, nil
}

// Convert redraws src into a new image of format f. The result is always
// contiguous and anchored at src's bounds.
func Convert(src image.Image, f Format) (image.Image, error) {
	b := src.Bounds()
	var dst draw.Image
	switch f {
	case FormatGray8:
		dst = image.NewGray(b)
	case FormatGray16:
		dst = image.NewGray16(b)
	case FormatAlpha8:
		dst = image.NewAlpha(b)
	case FormatRGBA8:
		dst = image.NewRGBA(b)
	case FormatNRGBA8:
		dst = image.NewNRGBA(b)
	case FormatCMYK8:
		dst = image.NewCMYK(b)
	case FormatRGBA16:
		dst = image.NewRGBA64(b)
	case FormatNRGBA16:
		dst = image.NewNRGBA64(b)
	default:
		return nil, fmt.Errorf("convert: unsupported format %s", f)
	}
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst, nil
}

// ToImage wraps a dense row-major buffer as a standard library image
// without copying. len(data) must be width*height*f.ElemSize().
func ToImage(data []byte, width, height int, f Format) (image.Image, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	if !f.IsValid() {
		return nil, fmt.Errorf("to image: unsupported format %s", f)
	}
	stride := width * f.ElemSize()
	if want := stride * height; len(data) != want {
		return nil, fmt.Errorf("expected %d bytes for %dx%d %s, got %d", want, width, height, f, len(data))
	}
	r := image.Rect(0, 0, width, height)

	switch f {
	case FormatGray8:
		return &image.Gray{Pix: data, Stride: stride, Rect: r}, nil
	case FormatGray16:
		return &image.Gray16{Pix: data, Stride: stride, Rect: r}, nil
	case FormatAlpha8:
		return &image.Alpha{Pix: data, Stride: stride, Rect: r}, nil
	case FormatRGBA8:
		return &image.RGBA{Pix: data, Stride: stride, Rect: r}, nil
	case FormatNRGBA8:
		return &image.NRGBA{Pix: data, Stride: stride, Rect: r}, nil
	case FormatCMYK8:
		return &image.CMYK{Pix: data, Stride: stride, Rect: r}, nil
	case FormatRGBA16:
		return &image.RGBA64{Pix: data, Stride: stride, Rect: r}, nil
	default:
		return &image.NRGBA64{Pix: data, Stride: stride, Rect: r}, nil
	}
}

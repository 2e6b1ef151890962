package codec

import (
	"fmt"

	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
)

// ImageInfo describes a decoded image and the view matflat would flatten.
type ImageInfo struct {
	Width      int
	Height     int
	Format     string    // container format, e.g. "png"
	Pixel      ir.Format // FormatUnknown if the decoded type has no byte view
	ElemSize   int
	Stride     int
	Contiguous bool
	ICC        []byte // embedded ICC profile, nil if absent
}

// GetInfo decodes data and reports its geometry and any ICC profile.
func GetInfo(data []byte) (*ImageInfo, error) {
	img, name, err := Decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	info := &ImageInfo{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: name,
	}

	if v, f, err := ir.FromImage(img); err == nil {
		info.Pixel = f
		info.ElemSize = v.ElemSize()
		info.Stride = v.Stride()
		info.Contiguous = v.IsContinuous()
	}

	if name == "jpeg" {
		icc, err := JPEGICC(data)
		if err != nil {
			return nil, fmt.Errorf("extracting ICC: %w", err)
		}
		info.ICC = icc
	}
	return info, nil
}

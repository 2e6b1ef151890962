package ir

import "fmt"

// Format describes how one element of a view is laid out in memory.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatGray8
	FormatGray16 // big-endian, as in image.Gray16
	FormatAlpha8
	FormatRGBA8 // premultiplied, as in image.RGBA
	FormatNRGBA8
	FormatCMYK8
	FormatRGBA16 // premultiplied, big-endian
	FormatNRGBA16
	formatCount
)

type formatInfo struct {
	name     string
	elemSize int
	channels int
}

var formatTable = [formatCount]formatInfo{
	FormatUnknown: {"unknown", 0, 0},
	FormatGray8:   {"gray8", 1, 1},
	FormatGray16:  {"gray16", 2, 1},
	FormatAlpha8:  {"alpha8", 1, 1},
	FormatRGBA8:   {"rgba8", 4, 4},
	FormatNRGBA8:  {"nrgba8", 4, 4},
	FormatCMYK8:   {"cmyk8", 4, 4},
	FormatRGBA16:  {"rgba16", 8, 4},
	FormatNRGBA16: {"nrgba16", 8, 4},
}

func (f Format) info() formatInfo {
	if f >= formatCount {
		return formatTable[FormatUnknown]
	}
	return formatTable[f]
}

// ElemSize returns the number of bytes per element.
func (f Format) ElemSize() int { return f.info().elemSize }

// Channels returns the number of samples per element.
func (f Format) Channels() int { return f.info().channels }

// IsValid reports whether f is a known, non-unknown format.
func (f Format) IsValid() bool { return f > FormatUnknown && f < formatCount }

func (f Format) String() string { return f.info().name }

// ParseFormat converts a format name (as printed by String) to a Format.
func ParseFormat(s string) (Format, error) {
	for f := FormatGray8; f < formatCount; f++ {
		if formatTable[f].name == s {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown pixel format: %q", s)
}

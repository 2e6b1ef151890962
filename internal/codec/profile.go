package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
)

const (
	maxProfileSize = 4 * 1024 * 1024
	acspMagic      = 0x61637370 // 'acsp'
)

// ProfileInfo is the subset of an ICC header that identify prints.
type ProfileInfo struct {
	Size       uint32
	Version    string
	ColorSpace string // "RGB ", "CMYK", "GRAY", ...
	PCS        string // "XYZ ", "Lab "
	Class      string // "mntr", "prtr", ...
}

// ParseProfileInfo reads ICC header metadata from raw profile bytes.
func ParseProfileInfo(data []byte) (*ProfileInfo, error) {
	if len(data) < 128 {
		return nil, errors.New("ICC profile too short (< 128 bytes)")
	}
	if len(data) > maxProfileSize {
		return nil, fmt.Errorf("ICC profile too large (%d bytes, max %d)", len(data), maxProfileSize)
	}
	if sig := binary.BigEndian.Uint32(data[36:40]); sig != acspMagic {
		return nil, fmt.Errorf("invalid ICC signature: 0x%08x", sig)
	}
	return &ProfileInfo{
		Size:       binary.BigEndian.Uint32(data[0:4]),
		Version:    fmt.Sprintf("%d.%d.%d", data[8], data[9]>>4, data[9]&0x0f),
		ColorSpace: string(data[16:20]),
		PCS:        string(data[20:24]),
		Class:      string(data[12:16]),
	}, nil
}

var colorSpaceNames = map[string]string{
	"RGB ": "RGB",
	"CMYK": "CMYK",
	"GRAY": "Grayscale",
	"Lab ": "CIELAB",
	"XYZ ": "CIEXYZ",
}

var profileClassNames = map[string]string{
	"mntr": "Display",
	"prtr": "Output",
	"scnr": "Input",
	"link": "DeviceLink",
	"spac": "ColorSpace",
	"abst": "Abstract",
	"nmcl": "NamedColor",
}

// ColorSpaceName returns a readable name for an ICC color space signature.
func ColorSpaceName(sig string) string {
	if n, ok := colorSpaceNames[sig]; ok {
		return n
	}
	return sig
}

// ProfileClassName returns a readable name for an ICC profile class.
func ProfileClassName(sig string) string {
	if n, ok := profileClassNames[sig]; ok {
		return n
	}
	return sig
}

// colorChannels is the number of color samples per pixel for each data
// color space a flattened buffer can carry.
var colorChannels = map[string]int{
	"GRAY": 1,
	"RGB ": 3,
	"CMYK": 4,
}

// formatChannels is the number of color samples (alpha excluded) in each
// element layout. alpha8 carries no color and matches no profile.
var formatChannels = map[ir.Format]int{
	ir.FormatGray8:   1,
	ir.FormatGray16:  1,
	ir.FormatRGBA8:   3,
	ir.FormatNRGBA8:  3,
	ir.FormatRGBA16:  3,
	ir.FormatNRGBA16: 3,
	ir.FormatCMYK8:   4,
}

// AppliesTo reports whether the profile can describe pixels stored in
// layout f: its data color space must have as many color samples as f, and
// its class must be one that tags image data (not a device link or an
// abstract transform).
func (p *ProfileInfo) AppliesTo(f ir.Format) bool {
	switch p.Class {
	case "link", "abst", "nmcl":
		return false
	}
	want, ok := colorChannels[p.ColorSpace]
	return ok && formatChannels[f] == want
}

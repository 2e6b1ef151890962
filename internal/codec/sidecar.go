package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
)

// Sidecar is the JSON metadata written next to a raw flattened file.
type Sidecar struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	ElemSize    int    `json:"elem_size"`
	Compression string `json:"compression"`
	RawBytes    int    `json:"raw_bytes"`
}

// SidecarPath returns the sidecar location for a raw file: a trailing
// ".raw" is replaced by ".json", anything else gets ".json" appended.
func SidecarPath(rawPath string) string {
	return strings.TrimSuffix(rawPath, ".raw") + ".json"
}

// WriteRaw writes data to path and meta to its sidecar.
func WriteRaw(path string, data []byte, meta Sidecar) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing raw: %w", err)
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}
	if err := os.WriteFile(SidecarPath(path), metaJSON, 0644); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	return nil
}

// ReadRaw reads a raw file and its sidecar, decompresses the payload and
// checks it against the recorded geometry.
func ReadRaw(path string) ([]byte, *Sidecar, error) {
	metaJSON, err := os.ReadFile(SidecarPath(path))
	if err != nil {
		return nil, nil, fmt.Errorf("reading sidecar: %w", err)
	}
	var meta Sidecar
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, nil, fmt.Errorf("parsing sidecar: %w", err)
	}

	f, err := ir.ParseFormat(meta.Format)
	if err != nil {
		return nil, nil, err
	}
	if meta.ElemSize != f.ElemSize() {
		return nil, nil, fmt.Errorf("sidecar elem_size %d does not match format %s", meta.ElemSize, f)
	}
	c, err := ParseCompression(meta.Compression)
	if err != nil {
		return nil, nil, err
	}

	stored, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading raw: %w", err)
	}
	data, err := Decompress(stored, c)
	if err != nil {
		return nil, nil, err
	}

	want := meta.Width * meta.Height * meta.ElemSize
	if len(data) != want || meta.RawBytes != want {
		return nil, nil, fmt.Errorf("expected %d bytes for %dx%d %s, got %d", want, meta.Width, meta.Height, f, len(data))
	}
	return data, &meta, nil
}

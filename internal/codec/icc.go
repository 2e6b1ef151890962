package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	iccMarkerTag     = "ICC_PROFILE\x00"
	iccHeaderSize    = 14    // tag + seq + count
	maxChunkDataSize = 65519 // 65535 - 2 (length) - 14 (header)

	markerAPP2 = 0xE2
	markerSOS  = 0xDA
	markerEOI  = 0xD9
)

// ErrNotJPEG is returned when a JPEG marker scan does not start with SOI.
var ErrNotJPEG = errors.New("codec: missing JPEG SOI marker")

// JPEGSegments returns the payloads of every marker segment of the given
// type that appears before the first scan. Payloads exclude the length bytes.
func JPEGSegments(data []byte, marker byte) ([][]byte, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, ErrNotJPEG
	}

	var out [][]byte
	i := 2
	for i < len(data) {
		if data[i] != 0xFF {
			return nil, fmt.Errorf("codec: expected marker at offset %d, got 0x%02x", i, data[i])
		}
		// Fill bytes.
		for i < len(data) && data[i] == 0xFF {
			i++
		}
		if i >= len(data) {
			break
		}
		m := data[i]
		i++

		switch {
		case m == markerSOS || m == markerEOI:
			return out, nil
		case m == 0x01 || (m >= 0xD0 && m <= 0xD8):
			continue
		}

		if i+2 > len(data) {
			return nil, fmt.Errorf("codec: truncated segment 0x%02x", m)
		}
		n := int(binary.BigEndian.Uint16(data[i:]))
		if n < 2 || i+n > len(data) {
			return nil, fmt.Errorf("codec: bad length %d for segment 0x%02x", n, m)
		}
		if m == marker {
			out = append(out, data[i+2:i+n])
		}
		i += n
	}
	return out, nil
}

// ExtractICC reassembles an ICC profile from APP2 marker payloads.
// Payloads that are not ICC chunks are ignored. It returns nil, nil when no
// profile is present.
func ExtractICC(markers [][]byte) ([]byte, error) {
	var slots [][]byte // slots[seq-1], sized by the first chunk's count
	size := 0

	for _, m := range markers {
		if len(m) < iccHeaderSize || string(m[:12]) != iccMarkerTag {
			continue
		}
		seq, count := int(m[12]), int(m[13])
		if seq == 0 || seq > count {
			return nil, fmt.Errorf("invalid ICC chunk sequence %d/%d", seq, count)
		}
		if slots == nil {
			slots = make([][]byte, count)
		} else if count != len(slots) {
			return nil, fmt.Errorf("inconsistent ICC chunk count: %d vs %d", count, len(slots))
		}
		if slots[seq-1] != nil {
			return nil, fmt.Errorf("duplicate ICC chunk %d/%d", seq, count)
		}
		slots[seq-1] = m[iccHeaderSize:]
		size += len(m) - iccHeaderSize
	}

	if slots == nil {
		return nil, nil
	}
	found := 0
	for _, c := range slots {
		if c != nil {
			found++
		}
	}
	if found != len(slots) {
		return nil, fmt.Errorf("expected %d ICC chunks, found %d", len(slots), found)
	}

	out := make([]byte, 0, size)
	for _, c := range slots {
		out = append(out, c...)
	}
	return out, nil
}

// ChunkICC splits an ICC profile into APP2 payloads (tag, 1-based sequence
// number, chunk count, data).
func ChunkICC(profile []byte) ([][]byte, error) {
	if len(profile) == 0 {
		return nil, errors.New("empty ICC profile")
	}
	n := (len(profile) + maxChunkDataSize - 1) / maxChunkDataSize
	if n > 255 {
		return nil, fmt.Errorf("ICC profile too large: needs %d chunks (max 255)", n)
	}

	chunks := make([][]byte, 0, n)
	for i := range n {
		part := profile[i*maxChunkDataSize : min((i+1)*maxChunkDataSize, len(profile))]
		c := make([]byte, iccHeaderSize, iccHeaderSize+len(part))
		copy(c, iccMarkerTag)
		c[12] = byte(i + 1)
		c[13] = byte(n)
		chunks = append(chunks, append(c, part...))
	}
	return chunks, nil
}

// EmbedICC returns a copy of a JPEG stream with profile inserted as APP2
// segments directly after SOI. Any ICC segments already present are kept,
// so callers should embed into freshly encoded data.
func EmbedICC(jpegData, profile []byte) ([]byte, error) {
	if len(jpegData) < 2 || jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, ErrNotJPEG
	}
	chunks, err := ChunkICC(profile)
	if err != nil {
		return nil, err
	}

	n := len(jpegData)
	for _, c := range chunks {
		n += 4 + len(c)
	}
	out := make([]byte, 0, n)
	out = append(out, jpegData[:2]...)
	for _, c := range chunks {
		out = append(out, 0xFF, markerAPP2)
		out = binary.BigEndian.AppendUint16(out, uint16(len(c)+2))
		out = append(out, c...)
	}
	return append(out, jpegData[2:]...), nil
}

// JPEGICC extracts the embedded ICC profile of a JPEG file, or nil if none.
func JPEGICC(data []byte) ([]byte, error) {
	segs, err := JPEGSegments(data, markerAPP2)
	if err != nil {
		return nil, err
	}
	return ExtractICC(segs)
}

// Package flatten copies strided row-major pixel buffers into dense linear
// byte slices, so pixel (r, c) can be read as dst[(r*cols+c)*elemSize].
package flatten

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrShortSource is returned when a Source hands out a row or backing region
// shorter than its declared geometry.
var ErrShortSource = errors.New("flatten: source shorter than its geometry")

// SizeMismatchError reports a destination whose length is not
// rows*cols*elemSize.
type SizeMismatchError struct {
	Want int
	Got  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("flatten: destination size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

// InvalidDimensionError reports a negative row count, column count or
// element size, or a geometry whose byte size does not fit in an int.
type InvalidDimensionError struct {
	Rows     int
	Cols     int
	ElemSize int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("flatten: invalid dimensions: rows=%d cols=%d elemSize=%d", e.Rows, e.Cols, e.ElemSize)
}

// Source is a read-only, borrowed view of a 2D image buffer.
// The caller must not mutate it while Flatten runs.
type Source interface {
	Rows() int
	Cols() int
	ElemSize() int
	// Row returns the bytes of row i starting at its first element.
	Row(i int) []byte
	// Bytes returns the backing region starting at the first element.
	Bytes() []byte
	IsContinuous() bool
}

// Size returns the number of bytes Flatten writes for src.
func Size(src Source) (int, error) {
	rows, cols, elem := src.Rows(), src.Cols(), src.ElemSize()
	if rows < 0 || cols < 0 || elem < 0 {
		return 0, &InvalidDimensionError{Rows: rows, Cols: cols, ElemSize: elem}
	}
	n, ok := mulInt(rows, cols)
	if ok {
		n, ok = mulInt(n, elem)
	}
	if !ok {
		return 0, &InvalidDimensionError{Rows: rows, Cols: cols, ElemSize: elem}
	}
	return n, nil
}

// mulInt multiplies two non-negative ints, reporting false on overflow.
func mulInt(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// Flatten copies src into dst in row-major order without padding.
// dst must be exactly Size(src) bytes; it is neither read nor resized.
func Flatten(src Source, dst []byte) error {
	n, err := Size(src)
	if err != nil {
		return err
	}
	if len(dst) != n {
		return &SizeMismatchError{Want: n, Got: len(dst)}
	}
	if n == 0 {
		return nil
	}

	if src.IsContinuous() {
		data := src.Bytes()
		if len(data) < n {
			return ErrShortSource
		}
		copy(dst, data[:n])
		return nil
	}

	rowBytes := src.Cols() * src.ElemSize()
	for i, off := 0, 0; i < src.Rows(); i, off = i+1, off+rowBytes {
		row := src.Row(i)
		if len(row) < rowBytes {
			return ErrShortSource
		}
		copy(dst[off:off+rowBytes], row[:rowBytes])
	}
	return nil
}

// ToBytes allocates a destination of the right size and flattens src into it.
func ToBytes(src Source) ([]byte, error) {
	n, err := Size(src)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, n)
	if err := Flatten(src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

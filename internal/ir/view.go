// Package ir holds the intermediate representation passed between the
// decoder and the flattener: a borrowed, read-only view over strided
// row-major pixel memory.
package ir

import (
	"errors"
	"math"
	"math/bits"
)

var (
	// ErrInvalidDimensions is returned for negative rows, cols or element size,
	// or for a geometry whose byte span does not fit in an int.
	ErrInvalidDimensions = errors.New("ir: invalid dimensions")

	// ErrInvalidStride is returned when stride is smaller than one row of elements.
	ErrInvalidStride = errors.New("ir: stride too small for width")

	// ErrDataTooSmall is returned when the backing slice cannot hold the geometry.
	ErrDataTooSmall = errors.New("ir: data buffer too small")

	// ErrOutOfBounds is returned when a window falls outside its parent view.
	ErrOutOfBounds = errors.New("ir: window out of bounds")
)

// View is a borrowed window over row-major pixel memory. Element (r, c)
// starts at data[r*stride + c*elemSize]. Rows may be followed by padding
// when stride > cols*elemSize.
//
// A View never owns its memory: whoever created the backing slice must keep
// it alive and unmodified while the view is in use.
type View struct {
	data     []byte
	rows     int
	cols     int
	elemSize int
	stride   int
}

// NewView wraps data without copying.
func NewView(data []byte, rows, cols, elemSize, stride int) (*View, error) {
	if rows < 0 || cols < 0 || elemSize < 0 {
		return nil, ErrInvalidDimensions
	}
	rowBytes, ok := mulInt(cols, elemSize)
	if !ok {
		return nil, ErrInvalidDimensions
	}
	if stride < rowBytes {
		return nil, ErrInvalidStride
	}
	need, ok := checkedSpan(rows, rowBytes, stride)
	if !ok {
		return nil, ErrInvalidDimensions
	}
	if len(data) < need {
		return nil, ErrDataTooSmall
	}
	return &View{
		data:     data[:need],
		rows:     rows,
		cols:     cols,
		elemSize: elemSize,
		stride:   stride,
	}, nil
}

// span is the number of bytes from the first element to one past the last.
// The geometry must already have passed checkedSpan.
func span(rows, cols, elemSize, stride int) int {
	n, _ := checkedSpan(rows, cols*elemSize, stride)
	return n
}

// checkedSpan is span for a precomputed row width, reporting false when the
// result does not fit in an int.
func checkedSpan(rows, rowBytes, stride int) (int, bool) {
	if rows == 0 || rowBytes == 0 {
		return 0, true
	}
	n, ok := mulInt(rows-1, stride)
	if !ok || n > math.MaxInt-rowBytes {
		return 0, false
	}
	return n + rowBytes, true
}

// mulInt multiplies two non-negative ints, reporting false on overflow.
func mulInt(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

func (v *View) Rows() int     { return v.rows }
func (v *View) Cols() int     { return v.cols }
func (v *View) ElemSize() int { return v.elemSize }

// Stride returns the distance in bytes between the starts of adjacent rows.
func (v *View) Stride() int { return v.stride }

// RowBytes returns the number of meaningful bytes in a row.
func (v *View) RowBytes() int { return v.cols * v.elemSize }

// IsContinuous reports whether the rows follow one another with no padding,
// so the view is equivalent to a flat array.
func (v *View) IsContinuous() bool {
	return v.rows <= 1 || v.stride == v.RowBytes()
}

// Bytes returns the backing region from the first element to the last.
// For a non-contiguous view it includes inter-row padding.
func (v *View) Bytes() []byte { return v.data }

// Row returns the meaningful bytes of row i, or nil if i is out of range.
func (v *View) Row(i int) []byte {
	if i < 0 || i >= v.rows {
		return nil
	}
	if v.RowBytes() == 0 {
		return v.data[:0]
	}
	start := i * v.stride
	return v.data[start : start+v.RowBytes()]
}

// At returns the bytes of element (r, c), or nil if out of range.
func (v *View) At(r, c int) []byte {
	if r < 0 || r >= v.rows || c < 0 || c >= v.cols {
		return nil
	}
	if v.elemSize == 0 {
		return v.data[:0]
	}
	off := r*v.stride + c*v.elemSize
	return v.data[off : off+v.elemSize]
}

// Sub returns a window of rows×cols elements whose top-left element is
// (y, x). The window shares memory with v and keeps v's stride.
func (v *View) Sub(x, y, cols, rows int) (*View, error) {
	if x < 0 || y < 0 || cols < 0 || rows < 0 {
		return nil, ErrOutOfBounds
	}
	if x+cols > v.cols || y+rows > v.rows {
		return nil, ErrOutOfBounds
	}
	sub := &View{
		rows:     rows,
		cols:     cols,
		elemSize: v.elemSize,
		stride:   v.stride,
	}
	if n := span(rows, cols, v.elemSize, v.stride); n > 0 {
		off := y*v.stride + x*v.elemSize
		sub.data = v.data[off : off+n]
	}
	return sub, nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/Chloe-Hyebin-Kim/Study/internal/codec"
	"github.com/Chloe-Hyebin-Kim/Study/internal/flatten"
	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
)

// Options controls the decode → flatten → compress pipeline.
type Options struct {
	// Format is the element layout of the output. FormatUnknown keeps the
	// decoded layout, falling back to rgba8 for types without a byte view
	// (YCbCr JPEGs, paletted GIFs).
	Format ir.Format
	// Crop selects a window relative to the image's top-left corner.
	// The zero rectangle means the whole image.
	Crop image.Rectangle
	// Compression applied to the flattened bytes.
	Compression codec.Compression
}

// Result holds the output of a pipeline run.
type Result struct {
	Data        []byte // flattened bytes, compressed if requested
	RawBytes    int    // length of the flattened bytes before compression
	Width       int
	Height      int
	Format      ir.Format
	Source      string // decoded container format
	Contiguous  bool   // whether the fast single-copy path was taken
	Compression codec.Compression
}

// Sidecar returns the metadata describing r's raw output.
func (r *Result) Sidecar() codec.Sidecar {
	return codec.Sidecar{
		Width:       r.Width,
		Height:      r.Height,
		Format:      r.Format.String(),
		ElemSize:    r.Format.ElemSize(),
		Compression: r.Compression.String(),
		RawBytes:    r.RawBytes,
	}
}

// Run executes the pipeline on an encoded image: decode → view → crop →
// flatten → compress.
func Run(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Format != ir.FormatUnknown && !opts.Format.IsValid() {
		return nil, fmt.Errorf("invalid output format %d", opts.Format)
	}

	// 1. Decode
	img, name, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// 2. Borrow the pixels, converting if the layout does not match
	view, format, err := viewOf(img, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}

	// 3. Crop
	if !opts.Crop.Empty() {
		c := opts.Crop
		view, err = view.Sub(c.Min.X, c.Min.Y, c.Dx(), c.Dy())
		if err != nil {
			return nil, fmt.Errorf("crop %v of %dx%d: %w", c, img.Bounds().Dx(), img.Bounds().Dy(), err)
		}
	}

	// 4. Flatten
	raw := make([]byte, view.Rows()*view.Cols()*view.ElemSize())
	if err := flatten.Flatten(view, raw); err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	Logger().Debug("flattened",
		"container", name,
		"width", view.Cols(),
		"height", view.Rows(),
		"format", format.String(),
		"stride", view.Stride(),
		"contiguous", view.IsContinuous(),
		"bytes", len(raw))

	// 5. Compress
	out, err := codec.Compress(raw, opts.Compression)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	return &Result{
		Data:        out,
		RawBytes:    len(raw),
		Width:       view.Cols(),
		Height:      view.Rows(),
		Format:      format,
		Source:      name,
		Contiguous:  view.IsContinuous(),
		Compression: opts.Compression,
	}, nil
}

// RunFile reads path and runs the pipeline on its contents.
func RunFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return Run(ctx, data, opts)
}

func viewOf(img image.Image, want ir.Format) (*ir.View, ir.Format, error) {
	v, f, err := ir.FromImage(img)
	switch {
	case err == nil && (want == ir.FormatUnknown || want == f):
		return v, f, nil
	case err != nil && !errors.Is(err, ir.ErrUnsupportedImage):
		return nil, ir.FormatUnknown, err
	}

	if want == ir.FormatUnknown {
		want = ir.FormatRGBA8
		Logger().Warn("no byte view for decoded image, converting", "type", fmt.Sprintf("%T", img), "format", want.String())
	}
	converted, err := ir.Convert(img, want)
	if err != nil {
		return nil, ir.FormatUnknown, err
	}
	v, f, err = ir.FromImage(converted)
	if err != nil {
		return nil, ir.FormatUnknown, err
	}
	return v, f, nil
}

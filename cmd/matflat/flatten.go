package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/Chloe-Hyebin-Kim/Study/internal/codec"
	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
	"github.com/Chloe-Hyebin-Kim/Study/internal/pipeline"
	"github.com/spf13/cobra"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Flatten an image to raw pixels (raw output + JSON sidecar)",
	RunE:  runFlatten,
}

func init() {
	flattenCmd.Flags().StringP("input", "i", "", "Input image file")
	flattenCmd.Flags().StringP("output", "o", "", "Output raw file")
	addPipelineFlags(flattenCmd)
	flattenCmd.Flags().String("crop", "", "Crop window x,y,w,h")
	flattenCmd.MarkFlagRequired("input")
	flattenCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(flattenCmd)
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Output pixel format (gray8, gray16, alpha8, rgba8, nrgba8, cmyk8, rgba16, nrgba16); empty keeps the decoded one")
	cmd.Flags().String("compress", "none", "Compression of the raw output (none, lz4, zstd)")
}

func pipelineOptions(cmd *cobra.Command) (pipeline.Options, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	compressStr, _ := cmd.Flags().GetString("compress")

	var opts pipeline.Options
	if formatStr != "" {
		f, err := ir.ParseFormat(formatStr)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	c, err := codec.ParseCompression(compressStr)
	if err != nil {
		return opts, err
	}
	opts.Compression = c

	if cmd.Flags().Lookup("crop") != nil {
		cropStr, _ := cmd.Flags().GetString("crop")
		if cropStr != "" {
			opts.Crop, err = parseCrop(cropStr)
			if err != nil {
				return opts, err
			}
		}
	}
	return opts, nil
}

// parseCrop parses "x,y,w,h".
func parseCrop(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("crop must be x,y,w,h: %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("crop %q: %w", s, err)
		}
		v[i] = n
	}
	if v[0] < 0 || v[1] < 0 || v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("crop %q: origin must be >= 0 and size > 0", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

func runFlatten(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	opts, err := pipelineOptions(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.RunFile(cmd.Context(), inputPath, opts)
	if err != nil {
		return fmt.Errorf("flatten: %w", err)
	}

	if err := codec.WriteRaw(outputPath, result.Data, result.Sidecar()); err != nil {
		return err
	}

	path := "row-by-row"
	if result.Contiguous {
		path = "single copy"
	}
	fmt.Printf("Flattened %dx%d %s (%s) → %s\n", result.Width, result.Height, result.Format, path, outputPath)
	fmt.Printf("Raw:     %d bytes\n", result.RawBytes)
	fmt.Printf("Stored:  %d bytes (%s)\n", len(result.Data), result.Compression)
	fmt.Printf("Sidecar: %s\n", codec.SidecarPath(outputPath))
	return nil
}

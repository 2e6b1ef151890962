package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Chloe-Hyebin-Kim/Study/internal/codec"
	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a raw flattened file back to PNG, JPEG, BMP or TIFF",
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("input", "i", "", "Input raw file (sidecar read from <name>.json)")
	encodeCmd.Flags().StringP("output", "o", "", "Output image file; format chosen by extension")
	encodeCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	encodeCmd.Flags().String("icc", "", "ICC profile to embed (JPEG output only)")
	encodeCmd.MarkFlagRequired("input")
	encodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")
	iccPath, _ := cmd.Flags().GetString("icc")

	kind, err := codec.KindFromPath(outputPath)
	if err != nil {
		return err
	}

	pixels, meta, err := codec.ReadRaw(inputPath)
	if err != nil {
		return err
	}
	f, err := ir.ParseFormat(meta.Format)
	if err != nil {
		return err
	}
	img, err := ir.ToImage(pixels, meta.Width, meta.Height, f)
	if err != nil {
		return err
	}

	var profile []byte
	if iccPath != "" {
		if kind != "jpeg" {
			return fmt.Errorf("--icc is only supported for JPEG output, not %s", kind)
		}
		if profile, err = loadProfileFor(iccPath, f); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := codec.EncodeImage(&buf, img, kind, quality); err != nil {
		return err
	}
	data := buf.Bytes()
	if profile != nil {
		if data, err = codec.EmbedICC(data, profile); err != nil {
			return fmt.Errorf("embedding ICC profile: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Encoded %dx%d %s → %s\n", meta.Width, meta.Height, f, outputPath)
	return nil
}

// loadProfileFor reads an ICC profile and checks that it can tag pixels
// stored as f.
func loadProfileFor(path string, f ir.Format) ([]byte, error) {
	profile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ICC profile: %w", err)
	}
	pi, err := codec.ParseProfileInfo(profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !pi.AppliesTo(f) {
		return nil, fmt.Errorf("%s: %s %s profile does not apply to %s pixels",
			path, codec.ColorSpaceName(pi.ColorSpace), codec.ProfileClassName(pi.Class), f)
	}
	return profile, nil
}

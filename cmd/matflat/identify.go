package main

import (
	"fmt"
	"os"

	"github.com/Chloe-Hyebin-Kim/Study/internal/codec"
	"github.com/Chloe-Hyebin-Kim/Study/internal/ir"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect image geometry, buffer layout and ICC profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := codec.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	fmt.Printf("File:        %s\n", path)
	fmt.Printf("Container:   %s\n", info.Format)
	fmt.Printf("Dimensions:  %d x %d\n", info.Width, info.Height)
	if info.ElemSize > 0 {
		fmt.Printf("Pixel:       %s (%d bytes/element)\n", info.Pixel, info.ElemSize)
		fmt.Printf("Stride:      %d bytes (contiguous: %t)\n", info.Stride, info.Contiguous)
		fmt.Printf("Flat size:   %d bytes\n", info.Width*info.Height*info.ElemSize)
	} else {
		fmt.Println("Pixel:       no byte view (converted to rgba8 when flattened)")
	}
	fmt.Printf("File size:   %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))

	if info.ICC == nil {
		fmt.Println("ICC profile: none")
		return nil
	}
	pi, err := codec.ParseProfileInfo(info.ICC)
	if err != nil {
		fmt.Printf("ICC profile: present (%d bytes) but invalid: %v\n", len(info.ICC), err)
		return nil
	}
	fmt.Printf("ICC profile: %d bytes\n", len(info.ICC))
	fmt.Printf("  Version:     %s\n", pi.Version)
	fmt.Printf("  Color space: %s\n", codec.ColorSpaceName(pi.ColorSpace))
	fmt.Printf("  PCS:         %s\n", codec.ColorSpaceName(pi.PCS))
	fmt.Printf("  Class:       %s\n", codec.ProfileClassName(pi.Class))

	flat := info.Pixel
	if flat == ir.FormatUnknown {
		flat = ir.FormatRGBA8
	}
	if pi.AppliesTo(flat) {
		fmt.Printf("  Applies to:  %s output\n", flat)
	} else {
		fmt.Printf("  Applies to:  not %s output (%s profile)\n", flat, codec.ColorSpaceName(pi.ColorSpace))
	}
	return nil
}

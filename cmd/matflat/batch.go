package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Chloe-Hyebin-Kim/Study/internal/codec"
	"github.com/Chloe-Hyebin-Kim/Study/internal/pipeline"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Flatten many images concurrently into an output directory",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringP("output-dir", "o", "", "Directory for raw files and sidecars")
	batchCmd.Flags().Int("workers", 4, "Maximum concurrent images (0 = unbounded)")
	addPipelineFlags(batchCmd)
	batchCmd.MarkFlagRequired("output-dir")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("output-dir")
	workers, _ := cmd.Flags().GetInt("workers")

	opts, err := pipelineOptions(cmd)
	if err != nil {
		return err
	}
	outputs, err := batchOutputs(outDir, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	results, err := pipeline.RunBatch(cmd.Context(), args, opts, workers)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	for i, res := range results {
		out := outputs[i]
		if err := codec.WriteRaw(out, res.Data, res.Sidecar()); err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		fmt.Printf("%s → %s (%dx%d %s, %d bytes)\n", args[i], out, res.Width, res.Height, res.Format, len(res.Data))
	}
	return nil
}

// batchOutputs maps each input to <outDir>/<base>.raw and fails if two inputs
// would write the same raw file or sidecar.
func batchOutputs(outDir string, inputs []string) ([]string, error) {
	outputs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out := filepath.Join(outDir, base+".raw")
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s both map to %s; rename one or run them separately", prev, in, out)
		}
		seen[out] = in
		outputs[i] = out
	}
	return outputs, nil
}

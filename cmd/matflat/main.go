package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Chloe-Hyebin-Kim/Study/internal/pipeline"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "matflat",
	Short:             "Flatten strided image buffers into dense raw pixel files",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline details to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFormat, _ := cmd.Flags().GetString("log-format")
	if !verbose {
		return nil
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	switch logFormat {
	case "text":
		pipeline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	case "json":
		pipeline.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	default:
		return fmt.Errorf("unknown log format: %q", logFormat)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/transparent-bg/internal/config"
	"github.com/ironsheep/transparent-bg/internal/convert"
	"github.com/ironsheep/transparent-bg/internal/logging"
)

// run is main without the process: it takes the arguments (without the
// program name), environment lookup and output streams, and returns the exit
// code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg := config.DefaultConfig()
	if err := cfg.FromEnv(getenv); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var input string
	cmd := newRootCommand(cfg, stdout, stderr, &input)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, convert.ErrInputNotFound) {
			fmt.Fprintf(stderr, "Error: File not found: %s\n", input)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(cfg *config.Config, stdout, stderr io.Writer, input *string) *cobra.Command {
	var (
		threshold int
		output    string
		ink       string
	)

	cmd := &cobra.Command{
		Use:   "transparent-bg <image>",
		Short: "Convert white backgrounds to transparent",
		Long: `Convert an image's near-white background to transparency while keeping
dark line-art. Gray anti-aliased pixels become ink with proportional alpha.

Environment variables:
  TRANSPARENT_BG_THRESHOLD    default threshold
  TRANSPARENT_BG_INK          default ink colour
  TRANSPARENT_BG_LOG_LEVEL    debug, info, warn or error`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*input = args[0]

			logger := slog.New(logging.NewTerminalHandler(stderr, logging.ParseLevel(cfg.LogLevel, slog.LevelInfo)))

			if output == "" {
				output = convert.OutputPathWithSuffix(*input, cfg.OutputSuffix)
			}

			res, err := convert.Convert(cmd.Context(), convert.Options{
				Input:     *input,
				Output:    output,
				Threshold: threshold,
				Ink:       ink,
			}, logger)
			if err != nil {
				return err
			}

			logger.Debug("converted image",
				"input", res.Input,
				"format", res.Format,
				"width", res.Width,
				"height", res.Height,
				"transparent", res.Stats.Transparent,
				"opaque", res.Stats.Opaque,
				"partial", res.Stats.Partial,
				"duration_ms", res.DurationMS)

			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.Output)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.IntVarP(&threshold, "threshold", "t", cfg.Threshold, "brightness threshold for white detection (1-255)")
	flags.StringVarP(&output, "output", "o", "", "output file path (default: adds "+cfg.OutputSuffix+" suffix)")
	flags.StringVarP(&ink, "color", "c", cfg.InkColor, "ink colour for line-art pixels")

	return cmd
}

// Command extract decodes a video into frames/frame_<n>.jpg without playing it.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"termplay/config"
	"termplay/internal/frames"
)

func main() {
	if err := newExtractCmd().Execute(); err != nil {
		log.Error("extraction failed", "err", err)
		os.Exit(1)
	}
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "extract [video]",
		Short:         "Extract every frame of a video as numbered JPEG files",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("input", args[0]); err != nil {
					return err
				}
			}
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.Input); err != nil {
				return fmt.Errorf("video file %s not found", cfg.Input)
			}
			logger := cfg.NewLogger(os.Stderr, "extract")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Extracting frames from", cfg.Input)
			paths, err := frames.NewExtractor(cfg.FramesDir, out, logger).Extract(ctx, cfg.Input)
			fmt.Fprintln(out)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no frames extracted from %s", cfg.Input)
			}

			fmt.Fprintf(out, "Frame extraction complete! %d frames in %s\n", len(paths), cfg.FramesDir)
			return nil
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

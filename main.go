package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"termplay/config"
	"termplay/internal/frames"
	"termplay/player"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("termplay failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "termplay",
		Short:         "Play a video as truecolor glyphs in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(os.Stderr, "termplay")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.SSH.Enabled {
				err = serve(ctx, cfg, logger)
			} else {
				err = play(ctx, cfg, logger, promptFor(os.Stdin))
			}
			if errors.Is(err, context.Canceled) {
				logger.Info("interrupted")
				return nil
			}
			return err
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func play(ctx context.Context, cfg *config.Config, logger *log.Logger, prompt player.Prompt) error {
	p := &player.Player{
		Extractor: frames.NewExtractor(cfg.FramesDir, os.Stdout, logger),
		Out:       os.Stdout,
		Prompt:    prompt,
		Width:     cfg.Width,
		FPS:       cfg.FPS,
		Logger:    logger,
	}

	if cfg.NoExtract {
		paths, err := extractedFrames(cfg.FramesDir)
		if err != nil {
			return err
		}
		logger.Info("playing extracted frames", "dir", cfg.FramesDir, "frames", len(paths))
		return p.PlayFrames(ctx, paths)
	}
	return p.Play(ctx, cfg.Input)
}

// extractedFrames returns the frames left in dir by an earlier extraction.
// A missing or empty directory is an error rather than an empty playlist.
func extractedFrames(dir string) ([]string, error) {
	n, err := frames.Count(dir)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w in %s, run extract first", frames.ErrNoFrames, dir)
	}
	return frames.List(dir)
}

// promptFor waits for a key press only when there is a keyboard to press.
func promptFor(in *os.File) player.Prompt {
	if term.IsTerminal(int(in.Fd())) {
		return player.KeyPrompt{}
	}
	return player.NoPrompt{}
}

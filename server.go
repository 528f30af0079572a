package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"termplay/config"
	"termplay/internal/frames"
	"termplay/player"
)

// serve extracts the video once and plays it to every SSH session.
func serve(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	paths, err := sessionFrames(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No frames to play.")
		return nil
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithHostKeyPath(cfg.SSH.HostKeyPath),
		wish.WithMiddleware(
			playbackMiddleware(paths, cfg, logger),
			activeterm.Middleware(), // playback needs a PTY on the client side
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("creating ssh server: %w", err)
	}

	errc := make(chan error, 1)
	logger.Info("Starting SSH server", "host", cfg.SSH.Host, "port", cfg.SSH.Port, "frames", len(paths))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("stopping ssh server: %w", err)
	}
	return nil
}

func sessionFrames(ctx context.Context, cfg *config.Config, logger *log.Logger) ([]string, error) {
	if cfg.NoExtract {
		return extractedFrames(cfg.FramesDir)
	}
	paths, err := frames.NewExtractor(cfg.FramesDir, os.Stdout, logger).Extract(ctx, cfg.Input)
	fmt.Println()
	return paths, err
}

func playbackMiddleware(paths []string, cfg *config.Config, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			out := crlfWriter{w: s}
			p := &player.Player{
				Out:    out,
				Prompt: player.KeyPrompt{In: s, Out: out},
				Width:  cfg.Width,
				FPS:    cfg.FPS,
				Logger: logger,
			}

			if err := p.PlayFrames(s.Context(), paths); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("session playback failed", "user", s.User(), "err", err)
				wish.Fatalln(s, err)
				return
			}
			next(s)
		}
	}
}

// crlfWriter turns bare line feeds into CRLF. Session output does not pass
// through a kernel tty, so nothing else returns the cursor to column 0.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

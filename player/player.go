// Package player ties extraction, resizing and rendering together into
// sequential playback.
package player

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"termplay/render"
	"termplay/scale"
)

// Extractor turns a video into an ordered list of frame files.
type Extractor interface {
	Extract(ctx context.Context, videoPath string) ([]string, error)
}

// SleepFunc suspends playback for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Player extracts a video, waits for the viewer and plays every frame.
type Player struct {
	Extractor Extractor
	Out       io.Writer
	Prompt    Prompt
	Width     int
	FPS       int
	Sleep     SleepFunc
	Logger    *log.Logger
}

// FrameInterval is the fixed delay between two frames.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Sleep waits for d. It returns early with ctx.Err() when ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Play extracts videoPath to completion and then plays it.
func (p *Player) Play(ctx context.Context, videoPath string) error {
	paths, err := p.Extractor.Extract(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", videoPath, err)
	}
	fmt.Fprintln(p.Out)
	return p.PlayFrames(ctx, paths)
}

// PlayFrames plays frames that are already on disk. Each frame is resized,
// drawn and followed by a fixed sleep; time spent resizing and drawing is
// not compensated for.
func (p *Player) PlayFrames(ctx context.Context, paths []string) (err error) {
	if len(paths) == 0 {
		fmt.Fprintln(p.Out, "No frames to play.")
		return nil
	}

	fmt.Fprintln(p.Out, "Video is ready to be played!")
	if err := p.prompt().Wait(ctx); err != nil {
		return fmt.Errorf("waiting for key press: %w", err)
	}

	defer func() {
		if rerr := render.Reset(p.Out); rerr != nil && err == nil {
			err = rerr
		}
	}()

	renderer := render.New(p.Out)
	interval := FrameInterval(p.FPS)
	sleep := p.sleep()

	p.logger().Debug("starting playback", "frames", len(paths), "width", p.Width, "interval", interval)
	for i, path := range paths {
		img, err := scale.File(path, p.Width)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		if err := renderer.Render(img); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) prompt() Prompt {
	if p.Prompt == nil {
		return NoPrompt{}
	}
	return p.Prompt
}

func (p *Player) sleep() SleepFunc {
	if p.Sleep == nil {
		return Sleep
	}
	return p.Sleep
}

func (p *Player) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

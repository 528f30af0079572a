// Package frames extracts every frame of a video into numbered JPEG files
// and enumerates frames that were extracted earlier.
package frames

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	// ErrOpen marks a video that could not be opened for decoding.
	ErrOpen = errors.New("open video")
	// ErrIO marks filesystem failures on the frames directory.
	ErrIO = errors.New("frames i/o")
	// ErrEncode marks a frame that could not be encoded as JPEG.
	ErrEncode = errors.New("encode frame")
	// ErrNoFrames marks a frames directory with nothing to play.
	ErrNoFrames = errors.New("no extracted frames")
)

// DefaultDir is where frames are written, relative to the working directory.
const DefaultDir = "frames"

// Extractor writes each decoded frame of a video to Dir/frame_<n>.jpg.
type Extractor struct {
	Dir    string
	Open   Opener
	Out    io.Writer // progress line
	Logger *log.Logger
}

// NewExtractor returns an Extractor decoding with Vidio.
func NewExtractor(dir string, out io.Writer, logger *log.Logger) *Extractor {
	if dir == "" {
		dir = DefaultDir
	}
	return &Extractor{Dir: dir, Open: OpenVideo, Out: out, Logger: logger}
}

// Extract decodes videoPath to completion and returns the frame paths in
// decode order. A video that cannot be opened is reported and yields an
// empty result with a nil error; every other failure is returned.
func (e *Extractor) Extract(ctx context.Context, videoPath string) ([]string, error) {
	src, err := e.Open(videoPath)
	if err != nil {
		e.logger().Error("error opening video file", "path", videoPath, "err", fmt.Errorf("%w: %w", ErrOpen, err))
		fmt.Fprintln(e.out(), "Error opening video file")
		return []string{}, nil
	}
	defer src.Close()

	total := src.Frames()
	e.logger().Debug("video opened", "path", videoPath, "frames", total)

	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating frames directory: %w", ErrIO, err)
	}

	paths := make([]string, 0, max(total, 0))
	for {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		frame, ok := src.Next()
		if !ok {
			break
		}

		path := Path(e.Dir, len(paths)+1)
		if err := writeJPEG(path, frame); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		fmt.Fprint(e.out(), Progress{Current: len(paths), Total: total})
	}

	e.logger().Debug("extraction finished", "frames", len(paths), "expected", total)
	return paths, nil
}

func (e *Extractor) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

func (e *Extractor) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// writeJPEG encodes img at the encoder's default quality.
func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := jpeg.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

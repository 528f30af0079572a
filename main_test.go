package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termplay/config"
	"termplay/internal/frames"
	"termplay/player"
)

func writeFrame(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.Gray{Y: 200})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
}

func TestPlay_NoExtract(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, frames.Path(dir, 1))
	writeFrame(t, frames.Path(dir, 2))

	cfg := config.DefaultConfig()
	cfg.NoExtract = true
	cfg.FramesDir = dir
	cfg.Width = 4
	cfg.FPS = 1000

	require.NoError(t, play(context.Background(), cfg, log.New(io.Discard), player.NoPrompt{}))
}

func TestPlay_NoExtractMissingDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NoExtract = true
	cfg.FramesDir = filepath.Join(t.TempDir(), "nope")

	err := play(context.Background(), cfg, log.New(io.Discard), player.NoPrompt{})
	assert.ErrorIs(t, err, frames.ErrNoFrames)
}

func TestExtractedFrames(t *testing.T) {
	dir := t.TempDir()

	_, err := extractedFrames(dir)
	assert.ErrorIs(t, err, frames.ErrNoFrames, "empty directory")

	require.NoError(t, os.WriteFile(frames.Path(dir, 2), nil, 0644))
	_, err = extractedFrames(dir)
	assert.ErrorIs(t, err, frames.ErrNoFrames, "run must start at frame 1")

	require.NoError(t, os.WriteFile(frames.Path(dir, 1), nil, 0644))
	paths, err := extractedFrames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{frames.Path(dir, 1), frames.Path(dir, 2)}, paths)
}

func TestRootCmd_RejectsInvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--fps", "0", "--config", writeEmptyConfig(t)})
	cmd.SetOut(io.Discard)

	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
	return path
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := crlfWriter{w: &buf}

	n, err := w.Write([]byte("ab\ncd\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "ab\r\ncd\r\n", buf.String())
}

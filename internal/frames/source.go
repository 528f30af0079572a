package frames

import (
	"fmt"
	"image"

	vidio "github.com/AlexEidt/Vidio"
)

// Source is an open decode session bound to a single video file.
type Source interface {
	// Frames is the frame count from the container metadata.
	Frames() int
	// Next decodes the following frame. It returns false at end of stream.
	Next() (image.Image, bool)
	Close()
}

// Opener opens a Source for the given path.
type Opener func(path string) (Source, error)

type videoSource struct {
	video *vidio.Video
	frame *image.RGBA
}

// OpenVideo opens path with Vidio, which drives ffmpeg and ffprobe under the
// hood. Decoded frames are written into one reused RGBA buffer.
func OpenVideo(path string) (Source, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, err
	}

	frame := image.NewRGBA(image.Rect(0, 0, video.Width(), video.Height()))
	if err := video.SetFrameBuffer(frame.Pix); err != nil {
		video.Close()
		return nil, fmt.Errorf("setting frame buffer: %w", err)
	}

	return &videoSource{video: video, frame: frame}, nil
}

func (s *videoSource) Frames() int {
	return s.video.Frames()
}

func (s *videoSource) Next() (image.Image, bool) {
	if !s.video.Read() {
		return nil, false
	}
	return s.frame, true
}

func (s *videoSource) Close() {
	s.video.Close()
}

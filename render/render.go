// Package render draws images in a truecolor terminal, one coloured glyph
// per pixel.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/charmbracelet/x/ansi"
)

// DefaultGlyph is printed for every pixel. Two cells keep pixels roughly square.
const DefaultGlyph = "@@"

const (
	// ClearScreen homes the cursor and erases the whole screen.
	ClearScreen = ansi.CursorHomePosition + ansi.EraseEntireScreen

	// resetColor is spelled out as SGR 0 rather than the shorter ESC[m.
	resetColor = "\x1b[0m"

	// RestoreTerminal drops any active colour and shows the cursor.
	RestoreTerminal = resetColor + ansi.ShowCursor
)

// ErrTerminalWrite marks output that could not be written to the terminal.
var ErrTerminalWrite = errors.New("terminal write")

// Renderer draws frames to Out.
type Renderer struct {
	Out   io.Writer
	Glyph string

	buf bytes.Buffer
}

// New returns a Renderer drawing DefaultGlyph to out.
func New(out io.Writer) *Renderer {
	return &Renderer{Out: out, Glyph: DefaultGlyph}
}

// Render clears the screen and draws img. The whole frame is buffered and
// handed to Out in a single write.
func (r *Renderer) Render(img image.Image) error {
	r.buf.Reset()
	r.buf.WriteString(ClearScreen)
	Draw(&r.buf, img, r.glyph())

	if _, err := r.Out.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

func (r *Renderer) glyph() string {
	if r.Glyph == "" {
		return DefaultGlyph
	}
	return r.Glyph
}

// Draw writes img row by row. Each pixel becomes
// ESC[38;2;R;G;Bm<glyph>ESC[0m and each row ends with a newline.
func Draw(buf *bytes.Buffer, img image.Image, glyph string) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			writeForeground(buf, uint8(cr>>8), uint8(cg>>8), uint8(cb>>8))
			buf.WriteString(glyph)
			buf.WriteString(resetColor)
		}
		buf.WriteByte('\n')
	}
}

func writeForeground(buf *bytes.Buffer, r, g, b uint8) {
	var num [3]byte
	buf.WriteString("\x1b[38;2;")
	buf.Write(strconv.AppendUint(num[:0], uint64(r), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendUint(num[:0], uint64(g), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendUint(num[:0], uint64(b), 10))
	buf.WriteByte('m')
}

// Reset clears any active colour and makes the cursor visible again.
func Reset(w io.Writer) error {
	if _, err := io.WriteString(w, RestoreTerminal); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalWrite, err)
	}
	return nil
}

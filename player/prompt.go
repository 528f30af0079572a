package player

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompt blocks until the viewer is ready for playback.
type Prompt interface {
	Wait(ctx context.Context) error
}

// NoPrompt starts playback right away. Used when input is not a terminal.
type NoPrompt struct{}

// Wait returns immediately.
func (NoPrompt) Wait(context.Context) error { return nil }

// KeyPrompt waits for any key press on In.
type KeyPrompt struct {
	In  io.Reader
	Out io.Writer
}

// Wait runs a bubbletea program until a key is pressed or ctx is done.
// Nil In and Out fall back to stdin and stdout.
func (p KeyPrompt) Wait(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	_, err := tea.NewProgram(keyModel{}, opts...).Run()
	return err
}

var hintStyle = lipgloss.NewStyle().Faint(true)

// keyModel quits on the first key press.
type keyModel struct {
	pressed bool
}

// Init has nothing to start.
func (m keyModel) Init() tea.Cmd {
	return nil
}

// Update quits on any key.
func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.pressed = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the hint until a key is pressed.
func (m keyModel) View() string {
	if m.pressed {
		return ""
	}
	return hintStyle.Render("Press any key to continue . . .") + "\n"
}

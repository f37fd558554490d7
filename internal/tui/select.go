// Package tui renders single-choice selection menus in the terminal.
package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrNoItems = errors.New("nothing to select")

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// Prompter shows menus on a terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// NewPrompter returns a Prompter on stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout}
}

// Select shows items under prompt with the cursor on the first one.
// It returns the chosen index, or ok=false when the user cancels
// (esc, q or ctrl+c).
func (p *Prompter) Select(ctx context.Context, prompt string, items []string) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, ErrNoItems
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(newModel(prompt, items), opts...).Run()
	if ctx.Err() != nil {
		return 0, false, ctx.Err()
	}
	if err != nil {
		return 0, false, err
	}
	m, ok := final.(model)
	if !ok || m.canceled || m.chosen < 0 {
		return 0, false, nil
	}
	return m.chosen, true, nil
}

type model struct {
	prompt   string
	items    []string
	cursor   int
	chosen   int
	canceled bool
}

func newModel(prompt string, items []string) model {
	return model{prompt: prompt, items: items, chosen: -1}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.items) - 1
		}
	case "down", "j", "tab":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
	case "enter", " ":
		m.chosen = m.cursor
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("? " + m.prompt))
	if m.chosen >= 0 {
		// collapsed summary once answered
		b.WriteString(" ")
		b.WriteString(selectedStyle.Render(m.items[m.chosen]))
		b.WriteString("\n")
		return b.String()
	}
	if m.canceled {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")
	for i, it := range m.items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + it))
		} else {
			b.WriteString("  " + it)
		}
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Package ui renders progress lines and spinners on the terminal.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// Console writes status lines to out. Spinners are only animated when
// interactive is set; otherwise the spinner title is printed as a plain line.
type Console struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	color       bool
}

func NewConsole(out io.Writer, interactive bool) *Console {
	return &Console{
		out:         out,
		interactive: interactive,
		color:       interactive,
	}
}

func (c *Console) Track(title string, action func() error) error {
	if !c.interactive {
		c.println(title)
		return action()
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner failed: %w", err)
	}

	return actionErr
}

func (c *Console) Succeeded(message string) {
	c.println(c.style(successStyle, "✔ ") + message)
}

func (c *Console) Failed(message string) {
	c.println(c.style(errorStyle, "✖ " + message))
}

func (c *Console) Info(message string) {
	c.println(message)
}

func (c *Console) Warn(message string) {
	c.println(c.style(warnStyle, "! " + message))
}

// Banner prints the program title.
func (c *Console) Banner(title string) {
	c.println(c.style(titleStyle, title))
}

func (c *Console) style(s lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return s.Render(text)
}

func (c *Console) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// Package tui renders markdown reports for terminal display.
package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour,
// auto-detecting light/dark terminal backgrounds and wrapping to the
// terminal width when stdout is a terminal.
func NewRenderer() func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, nil
		}
		return r.Render(markdown)
	}
}

// Package goldmark renders session notes written in markdown to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
package goldmark

import "github.com/fwojciec/studybuddy"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width; code is shown behind
// a gutter without reflow.
func Render(source string, width int, theme studybuddy.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme, width)
	return r.render([]byte(source))
}

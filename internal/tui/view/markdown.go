package view

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Markdown renders task descriptions with glamour. The renderer is rebuilt
// only when the width or style changes.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// Render renders body as markdown wrapped to width. On any glamour error it
// falls back to the body wrapped as plain text.
func (md *Markdown) Render(body, style string, width int) string {
	if width < 10 {
		width = 10
	}
	plain := lipgloss.NewStyle().Width(width).Render(body)

	if md.renderer == nil || md.style != style || md.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
			glamour.WithPreservedNewLines(),
		)
		if err != nil {
			return plain
		}
		md.renderer, md.style, md.width = r, style, width
	}

	out, err := md.renderer.Render(body)
	if err != nil {
		return plain
	}
	return strings.Trim(out, "\n")
}

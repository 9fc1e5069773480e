package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints every cell of a bar with one background color. Styled
// segments end with an ANSI reset, so the gaps between them are painted
// explicitly.
type BgStyle struct {
	fill  lipgloss.Style
	space string
}

// NewBgStyle returns a BgStyle for the given color.
func NewBgStyle(color string) BgStyle {
	fill := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return BgStyle{fill: fill, space: fill.Render(" ")}
}

// Render draws text with style on the bar background, spaces included.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	words := strings.Split(text, " ")
	styled := style.Inherit(b.fill)
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns one painted space.
func (b BgStyle) Space() string {
	return b.space
}

// Join joins rendered parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.fill.Render(sep))
}

// FillLine pads content to width.
func (b BgStyle) FillLine(content string, width int) string {
	return b.fill.Width(width).Render(content)
}

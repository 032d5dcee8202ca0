package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/notify"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// latest notification (if any) and the data age on the right.
func RenderStatusBar(width int, last *notify.Notification, dataAge string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [r]efresh  [p]ay  [?]help  [q]uit"

	var right string
	if last != nil {
		color := t.Green
		if last.Variant == notify.Destructive {
			color = t.Red
		}
		text := last.Title
		if last.Description != "" {
			text += ": " + last.Description
		}
		right = lipgloss.NewStyle().Foreground(color).Render(text) + "  "
	}
	if dataAge != "" {
		right += "Data: " + dataAge + " "
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return style.Render(left + strings.Repeat(" ", padding) + right)
}

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: '1'},
	{Name: "Billing", Key: '2'},
	{Name: "Partners", Key: '3'},
	{Name: "Projects", Key: '4'},
}

// tabGap separates rendered tabs.
const tabGap = "  "

func renderTab(tab Tab, active bool) string {
	t := theme.Active
	if active {
		return lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}
	keyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
	return keyStyle.Render(string(tab.Key)) + nameStyle.Render(tab.Name)
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(" " + strings.Join(parts, tabGap))
}

// TabAtX returns the tab under column x of a bar rendered with activeIdx, or -1.
func TabAtX(activeIdx, x int) int {
	pos := 1
	for i, tab := range Tabs {
		w := lipgloss.Width(renderTab(tab, i == activeIdx))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabGap)
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

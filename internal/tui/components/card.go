// Package components provides reusable TUI widgets for the bizdash dashboard.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/trend"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// TrendLabel renders a metric's change as an arrow and signed delta colored
// by its trend category. It is empty when the change is unknown.
func TrendLabel(change *float64, isCount, higherIsBetter bool) string {
	r, ok := trend.Classify(change, higherIsBetter)
	if !ok {
		return ""
	}
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TrendColor(r.Category))
	return style.Render(trend.Arrow(r, ok) + " " + trend.Format(*change, isCount))
}

// MetricCard renders a metric with its formatted value and trend.
// outerWidth is the total rendered width including border.
func MetricCard(m model.Metric, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2 // border
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Bold(true)

	content := labelStyle.Render(m.Label) + "\n" +
		valueStyle.Render(cli.FormatValue(m.Value, m.IsCount))
	if delta := TrendLabel(m.Change, m.IsCount, m.HigherIsBetter); delta != "" {
		content += "\n" + delta
	}

	return cardStyle.Render(content)
}

// MetricCardRow renders metric cards side by side, summing to totalWidth.
func MetricCardRow(metrics []model.Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = MetricCard(m, widths[i])
	}
	return CardRow(rendered)
}

// StatusBadge renders label in its category color. Empty labels render as
// "Unknown". c may be nil.
func StatusBadge(c *status.Classifier, label string) string {
	t := theme.Active
	cat := c.Classify(label)
	if label == "" {
		label = "Unknown"
	}
	return lipgloss.NewStyle().
		Foreground(t.StatusColor(cat)).
		Bold(cat != status.Default).
		Render("● " + label)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(contentWidth).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}

// CardRow joins pre-rendered card strings horizontally.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}

// EmptyState renders the placeholder line for a list with no rows.
func EmptyState(what string) string {
	return lipgloss.NewStyle().
		Foreground(theme.Active.TextDim).
		Italic(true).
		Render("No " + what + " yet.")
}

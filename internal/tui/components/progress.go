package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

func clamp01(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// ProgressBar renders a solid bar for pct (0..1) followed by the percentage.
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active
	pct = clamp01(pct)
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(pct) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// ColorForBudget returns green/yellow/orange/red as spend approaches budget.
func ColorForBudget(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Red
	case pct >= 0.85:
		return t.Orange
	case pct >= 0.6:
		return t.Yellow
	default:
		return t.Green
	}
}

// ProjectRow renders a project's name, status, completion bar and spend.
func ProjectRow(c *status.Classifier, p model.Project, nameW, barW int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	spend := cli.FormatCurrency(p.Spent) + " / " + cli.FormatCurrency(p.Budget)
	if p.Budget > 0 {
		spend = lipgloss.NewStyle().Foreground(ColorForBudget(p.Spent / p.Budget)).Render(spend)
	} else {
		spend = mutedStyle.Render(spend)
	}

	return nameStyle.Render(fmt.Sprintf("%-*s", nameW, cli.Truncate(p.Name, nameW))) + " " +
		ProgressBar(p.Progress/100, barW, t.Accent) + "  " +
		StatusBadge(c, p.Status) + "  " +
		spend
}

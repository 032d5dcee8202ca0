package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/chart"
	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/tui/components"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

// column is one table column; width 0 takes the remaining space.
type column struct {
	title string
	width int
}

// renderRows lays out a selectable table. cells are plain text except the
// last column, which may carry its own styling (status badges).
func renderRows(cols []column, rows [][]string, cursor, width int) string {
	t := theme.Active
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	fixed := 2
	for _, c := range cols {
		fixed += c.width + 1
	}
	flex := max(8, width-fixed)

	cell := func(c column, s string) string {
		w := c.width
		if w == 0 {
			w = flex
		}
		return fmt.Sprintf("%-*s", w, cli.Truncate(s, w))
	}

	var b strings.Builder
	b.WriteString("  ")
	for _, c := range cols {
		b.WriteString(headerStyle.Render(cell(c, c.title)))
		b.WriteString(" ")
	}

	for i, row := range rows {
		b.WriteString("\n")
		marker, style := "  ", rowStyle
		if i == cursor {
			marker, style = "▸ ", selStyle
		}
		var line strings.Builder
		for j, c := range cols[:len(cols)-1] {
			line.WriteString(cell(c, row[j]))
			line.WriteString(" ")
		}
		b.WriteString(style.Render(marker + line.String()))
		b.WriteString(row[len(row)-1])
	}
	return b.String()
}

func (a App) renderBilling(cw int) string {
	inner := components.CardInnerWidth(cw)
	if len(a.snap.Billing) == 0 {
		return components.ContentCard("Billing", components.EmptyState("invoices"), cw)
	}

	cols := []column{
		{"ID", 6}, {"Partner", 18}, {"Description", 0}, {"Amount", 14}, {"Due", 10}, {"Status", 12},
	}
	rows := make([][]string, len(a.snap.Billing))
	for i, bill := range a.snap.Billing {
		rows[i] = []string{
			strconv.FormatInt(bill.ID, 10),
			bill.PartnerName,
			bill.Description,
			cli.FormatCurrency(bill.Amount),
			bill.DueDate,
			components.StatusBadge(a.classifier, bill.Status),
		}
	}
	body := renderRows(cols, rows, a.cursor[tabBilling], inner)
	hint := lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("p: mark selected invoice paid")
	return components.ContentCard("Billing", body+"\n\n"+hint, cw)
}

func (a App) renderPartners(cw int) string {
	inner := components.CardInnerWidth(cw)
	if len(a.snap.Partners) == 0 {
		return components.ContentCard("Partners", components.EmptyState("partners"), cw)
	}

	cols := []column{
		{"Name", 20}, {"Company", 20}, {"Email", 0}, {"Share", 8}, {"Status", 12},
	}
	rows := make([][]string, len(a.snap.Partners))
	for i, p := range a.snap.Partners {
		rows[i] = []string{
			p.Name,
			p.Company,
			p.Email,
			cli.FormatPercent(p.SharePercent),
			components.StatusBadge(a.classifier, p.Status),
		}
	}
	body := renderRows(cols, rows, a.cursor[tabPartners], inner)

	chartW := components.CardInnerWidth(cw)
	pie := components.RenderChart(chart.ProfitDistributionSpec(a.snap.Profit, a.chartHeight), chartW)
	return lipgloss.JoinVertical(lipgloss.Left,
		components.ContentCard("Partners", body, cw),
		components.ContentCard("", pie, cw))
}

func (a App) renderProjects(cw int) string {
	if len(a.snap.Projects) == 0 {
		return components.ContentCard("Projects", components.EmptyState("projects"), cw)
	}
	inner := components.CardInnerWidth(cw)

	nameW := 20
	barW := max(10, inner/3)
	t := theme.Active
	var b strings.Builder
	for i, p := range a.snap.Projects {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := "  "
		if i == a.cursor[tabProjects] {
			marker = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
		}
		b.WriteString(marker)
		b.WriteString(components.ProjectRow(a.classifier, p, nameW, barW))
	}

	bars := components.RenderChart(chart.ProjectSpec(a.snap.Projects, a.chartHeight), inner)
	return lipgloss.JoinVertical(lipgloss.Left,
		components.ContentCard("Projects", b.String(), cw),
		components.ContentCard("", bars, cw))
}

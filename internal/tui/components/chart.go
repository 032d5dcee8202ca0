package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/chart"
	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. Negative values sit on
// the baseline.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// RenderChart draws spec in at most width columns. Bar charts draw one
// horizontal bar per point and series, line charts one sparkline per series,
// and pie charts a proportional strip with a legend.
func RenderChart(spec chart.Spec, width int) string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	var b strings.Builder
	if spec.Title != "" {
		b.WriteString(titleStyle.Render(spec.Title))
		b.WriteString("\n")
	}
	if spec.Empty() {
		b.WriteString(EmptyState(strings.ToLower(spec.Title) + " data"))
		return b.String()
	}

	switch spec.Type {
	case chart.Line:
		b.WriteString(renderLines(spec, width))
	case chart.Pie:
		b.WriteString(renderPie(spec, width))
	default:
		b.WriteString(renderBars(spec, width))
	}
	return b.String()
}

// seriesValue reads key from p, falling back to the point's primary value.
func seriesValue(p chart.Point, key string) float64 {
	if v, ok := p.Series[key]; ok {
		return v
	}
	return p.Value
}

func seriesKeys(spec chart.Spec) []string {
	if len(spec.YKeys) > 0 {
		return spec.YKeys
	}
	return []string{""}
}

func seriesColor(spec chart.Spec, i int) lipgloss.Color {
	if i < len(spec.Colors) {
		return lipgloss.Color(spec.Colors[i])
	}
	return lipgloss.Color(chart.ColorAt(i))
}

func labelWidth(points []chart.Point, limit int) int {
	w := 0
	for _, p := range points {
		w = max(w, lipgloss.Width(p.Label))
	}
	return min(w, limit)
}

func renderBars(spec chart.Spec, width int) string {
	t := theme.Active
	keys := seriesKeys(spec)
	points := spec.Data
	if spec.Height > 0 && len(points) > spec.Height {
		points = points[:spec.Height]
	}

	peak := 0.0
	for _, p := range points {
		for _, k := range keys {
			peak = math.Max(peak, seriesValue(p, k))
		}
	}
	if peak == 0 {
		peak = 1
	}

	labelW := labelWidth(points, 16)
	valueW := 8
	barW := max(4, width-labelW-valueW-2)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var lines []string
	for _, p := range points {
		for i, k := range keys {
			label := ""
			if i == 0 {
				label = cli.Truncate(p.Label, labelW)
			}
			v := seriesValue(p, k)
			n := int(math.Round(math.Max(v, 0) / peak * float64(barW)))
			bar := lipgloss.NewStyle().Foreground(seriesColor(spec, i)).Render(strings.Repeat("█", n))
			lines = append(lines,
				labelStyle.Render(fmt.Sprintf("%-*s", labelW, label))+" "+
					bar+strings.Repeat(" ", barW-n)+" "+
					valueStyle.Render(compactValue(v)))
		}
	}
	if len(keys) > 1 {
		lines = append(lines, legend(spec, keys))
	}
	return strings.Join(lines, "\n")
}

func renderLines(spec chart.Spec, width int) string {
	t := theme.Active
	keys := seriesKeys(spec)

	nameW := 0
	for _, k := range keys {
		nameW = max(nameW, len(k))
	}
	avail := max(4, width-nameW-10)

	points := spec.Data
	if len(points) > avail {
		points = points[len(points)-avail:]
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	lines := make([]string, 0, len(keys)+1)
	for i, k := range keys {
		values := make([]float64, len(points))
		for j, p := range points {
			values[j] = seriesValue(p, k)
		}
		lines = append(lines,
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, k))+" "+
				Sparkline(values, seriesColor(spec, i))+" "+
				valueStyle.Render(compactValue(values[len(values)-1])))
	}

	first, last := points[0].Label, points[len(points)-1].Label
	axis := first
	if len(points) > 1 {
		gap := max(1, len(points)-lipgloss.Width(first)-lipgloss.Width(last))
		axis = first + strings.Repeat(" ", gap) + last
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).
		Render(strings.Repeat(" ", nameW+1)+axis))
	return strings.Join(lines, "\n")
}

func renderPie(spec chart.Spec, width int) string {
	t := theme.Active
	total := 0.0
	for _, p := range spec.Data {
		total += math.Max(p.Value, 0)
	}
	if total == 0 {
		return EmptyState(strings.ToLower(spec.Title) + " data")
	}

	stripW := max(10, width)
	var strip strings.Builder
	used := 0
	for i, p := range spec.Data {
		n := int(math.Round(math.Max(p.Value, 0) / total * float64(stripW)))
		if i == len(spec.Data)-1 {
			n = stripW - used
		}
		n = max(0, min(n, stripW-used))
		used += n
		strip.WriteString(lipgloss.NewStyle().Foreground(pointColor(spec, i, p)).Render(strings.Repeat("█", n)))
	}

	labelW := labelWidth(spec.Data, 20)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	lines := []string{strip.String()}
	for i, p := range spec.Data {
		share := math.Max(p.Value, 0) / total * 100
		lines = append(lines,
			lipgloss.NewStyle().Foreground(pointColor(spec, i, p)).Render("●")+" "+
				labelStyle.Render(fmt.Sprintf("%-*s", labelW, cli.Truncate(p.Label, labelW)))+" "+
				mutedStyle.Render(fmt.Sprintf("%5.1f%%", share))+"  "+
				labelStyle.Render(cli.FormatCurrency(p.Value)))
	}
	return strings.Join(lines, "\n")
}

func pointColor(spec chart.Spec, i int, p chart.Point) lipgloss.Color {
	if i < len(spec.Colors) {
		return lipgloss.Color(spec.Colors[i])
	}
	if p.Color != "" {
		return lipgloss.Color(p.Color)
	}
	return lipgloss.Color(chart.ColorAt(i))
}

func legend(spec chart.Spec, keys []string) string {
	muted := lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = lipgloss.NewStyle().Foreground(seriesColor(spec, i)).Render("■") + " " + muted.Render(k)
	}
	return strings.Join(parts, "  ")
}

// compactValue abbreviates large magnitudes (12.5k, 3M) for axis labels.
func compactValue(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	var s string
	switch {
	case v >= 1e9:
		s = trimZero(v/1e9) + "B"
	case v >= 1e6:
		s = trimZero(v/1e6) + "M"
	case v >= 1e3:
		s = trimZero(v/1e3) + "k"
	case v >= 1 || v == 0:
		s = fmt.Sprintf("%.0f", v)
	default:
		s = fmt.Sprintf("%.2f", v)
	}
	return sign + s
}

func trimZero(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/bizdash/internal/status"
)

func TestRenderTable_LinesShareWidth(t *testing.T) {
	out := RenderTable(Table{
		Headers:    []string{"ID", "Status", "Amount"},
		RightAlign: []bool{false, false, true},
		Rows: [][]string{
			{"5", StatusText(nil, "Paid"), FormatCurrency(1234.5)},
			{"---"},
			{"12", StatusText(nil, ""), FormatCurrency(7)},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7)
	want := lipgloss.Width(lines[0])
	for _, l := range lines {
		assert.Equal(t, want, lipgloss.Width(l), l)
	}
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "Unknown")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestStatusText_UsesSink(t *testing.T) {
	var got []status.Category
	c := status.New(func(_ string, cat status.Category) { got = append(got, cat) })
	assert.Contains(t, StatusText(c, "overdue"), "overdue")
	assert.Equal(t, []status.Category{status.Error}, got)
}

func TestTrendText(t *testing.T) {
	assert.Contains(t, TrendText(nil, false, true), "-")
	d := -4.0
	assert.Contains(t, TrendText(&d, false, false), "↓ -4.00%")
	assert.Contains(t, TrendText(&d, true, true), "↓ -4")
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil))
	assert.Contains(t, RenderSparkline([]float64{0, 7}), "▁█")
}

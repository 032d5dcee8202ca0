package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/bizdash/internal/chart"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/notify"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// fg is the truecolor foreground parameter lipgloss emits for c.
func fg(c lipgloss.Color) string {
	return termenv.TrueColor.Color(string(c)).Sequence(false)
}

func f(v float64) *float64 { return &v }

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, n := range []int{1, 3, 5, 7} {
		sum := 0
		for _, w := range LayoutRow(101, n) {
			sum += w
		}
		if sum != 101 {
			t.Errorf("n=%d: widths sum to %d", n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("n=0 should return nil")
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	tallLines := len(strings.Split(tallCard, "\n"))
	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d", got, tallLines)
	}
	if w := lipgloss.Width(joined); w != 44 {
		t.Errorf("joined width = %d, want 44", w)
	}
}

func TestMetricCard_CurrencyAndTrend(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active

	card := MetricCard(model.Metric{
		Label: "Total Revenue", Value: 1234.5, Change: f(12.5), HigherIsBetter: true,
	}, 30)
	for _, want := range []string{"Total Revenue", "$1,234.50", "↑ +12.50%", fg(th.Green)} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestMetricCard_LowerIsBetterRise(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active

	card := MetricCard(model.Metric{Label: "Pending Invoices", Value: 7, Change: f(2), IsCount: true}, 30)
	for _, want := range []string{"7", "↑ +2", fg(th.Red)} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestMetricCard_NoChange(t *testing.T) {
	card := MetricCard(model.Metric{Label: "Expenses", Value: 0}, 30)
	if !strings.Contains(card, "$0.00") {
		t.Errorf("card missing $0.00:\n%s", card)
	}
	if strings.ContainsAny(card, "↑↓") {
		t.Errorf("card without change should have no arrow:\n%s", card)
	}
}

func TestStatusBadge(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active

	var seen []string
	c := status.New(func(label string, _ status.Category) { seen = append(seen, label) })

	paid := StatusBadge(c, "PAID")
	if !strings.Contains(paid, "PAID") || !strings.Contains(paid, fg(th.Green)) {
		t.Errorf("paid badge = %q", paid)
	}
	if got := StatusBadge(nil, ""); !strings.Contains(got, "Unknown") || !strings.Contains(got, fg(th.TextMuted)) {
		t.Errorf("empty badge = %q", got)
	}
	if len(seen) != 1 || seen[0] != "PAID" {
		t.Errorf("sink saw %v", seen)
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(1.7, 10, theme.Active.Accent); !strings.Contains(got, "100%") {
		t.Errorf("over-full bar = %q", got)
	}
	if got := ProgressBar(-1, 10, theme.Active.Accent); !strings.Contains(got, "  0%") {
		t.Errorf("negative bar = %q", got)
	}
}

func TestRenderChart_Empty(t *testing.T) {
	got := RenderChart(chart.RevenueSpec(nil, 8), 60)
	if !strings.Contains(got, "No revenue data yet.") {
		t.Errorf("empty chart = %q", got)
	}
}

func TestRenderChart_BarRowsPerSeries(t *testing.T) {
	spec := chart.ProjectSpec([]model.Project{
		{Name: "Roof", Budget: 1000, Spent: 400},
		{Name: "Solar", Budget: 2500, Spent: 2600},
	}, 10)
	got := RenderChart(spec, 60)
	lines := strings.Split(got, "\n")
	// title + 2 points x 2 series + legend
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line wider than 60 (%d): %q", w, line)
		}
	}
	if !strings.Contains(got, "2.5k") {
		t.Errorf("missing compact value:\n%s", got)
	}
}

func TestRenderChart_LineSeries(t *testing.T) {
	spec := chart.RevenueSpec([]model.RevenueEntry{
		{Period: "Jan", Revenue: 100, Expenses: 40, Profit: 60},
		{Period: "Feb", Revenue: 200, Expenses: 50, Profit: 150},
	}, 8)
	got := RenderChart(spec, 60)
	for _, want := range []string{"revenue", "expenses", "profit", "Jan", "Feb", "▄█"} {
		if !strings.Contains(got, want) {
			t.Errorf("line chart missing %q:\n%s", want, got)
		}
	}
}

func TestRenderChart_PieShares(t *testing.T) {
	spec := chart.ProfitDistributionSpec([]model.ProfitShare{
		{PartnerName: "Ann", Amount: 60},
		{PartnerName: "Bob", Amount: 40},
	}, 8)
	got := RenderChart(spec, 40)
	for _, want := range []string{" 60.0%", " 40.0%", "$60.00", fg(lipgloss.Color(chart.ColorAt(1)))} {
		if !strings.Contains(got, want) {
			t.Errorf("pie chart missing %q:\n%s", want, got)
		}
	}
}

func TestCompactValue(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		0.5:     "0.50",
		950:     "950",
		1500:    "1.5k",
		2000000: "2M",
		-3000:   "-3k",
	}
	for in, want := range cases {
		if got := compactValue(in); got != want {
			t.Errorf("compactValue(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusBarShowsLatestNotification(t *testing.T) {
	theme.SetActive("flexoki-dark")
	n := notify.Notification{Title: "Error", Description: "locked", Variant: notify.Destructive}
	got := RenderStatusBar(120, &n, "2s")
	if !strings.Contains(got, "Error: locked") || !strings.Contains(got, fg(theme.Active.Red)) {
		t.Errorf("status bar = %q", got)
	}
	if w := lipgloss.Width(got); w != 120 {
		t.Errorf("status bar width = %d", w)
	}
}

func TestTabAtXRoundTrips(t *testing.T) {
	for active := range Tabs {
		if RenderTabBar(active, 200) == "" {
			t.Fatal("empty tab bar")
		}
		pos := 1
		for i, tab := range Tabs {
			w := lipgloss.Width(renderTab(tab, i == active))
			if got := TabAtX(active, pos+w/2); got != i {
				t.Fatalf("active=%d: midpoint of tab %d maps to %d", active, i, got)
			}
			pos += w + len(tabGap)
		}
	}
	if TabAtX(0, 0) != -1 {
		t.Error("column 0 is padding")
	}
	if TabIdxByKey('3') != 2 || TabIdxByKey('x') != -1 {
		t.Error("TabIdxByKey mismatch")
	}
}

// Package chart turns domain records into the generic point series a chart
// renderer consumes.
package chart

import (
	"sort"

	"github.com/theirongolddev/bizdash/internal/model"
)

// Type selects how a renderer draws a Spec.
type Type string

const (
	Bar  Type = "bar"
	Line Type = "line"
	Pie  Type = "pie"
)

// Palette is the fixed color order for series and slices (Flexoki accents).
var Palette = []string{
	"#3AA99F", // cyan
	"#4385BE", // blue
	"#879A39", // green
	"#D0A215", // yellow
	"#DA702C", // orange
	"#CE5D97", // magenta
	"#8B7EC8", // purple
	"#D14D41", // red
}

// ColorAt returns the palette color for index i, cycling when i runs past the
// end of the palette.
func ColorAt(i int) string {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}

// Point is one x-axis entry.
type Point struct {
	Label  string
	Value  float64
	Series map[string]float64
	Color  string
}

// FieldMap says how to read a point out of a record of type R. Series is
// optional.
type FieldMap[R any] struct {
	Label  func(R) string
	Value  func(R) float64
	Series map[string]func(R) float64
}

// ToPoints maps records to points, one per record, in input order.
func ToPoints[R any](records []R, fm FieldMap[R]) []Point {
	points := make([]Point, 0, len(records))
	for i, r := range records {
		p := Point{Color: ColorAt(i)}
		if fm.Label != nil {
			p.Label = fm.Label(r)
		}
		if fm.Value != nil {
			p.Value = fm.Value(r)
		}
		if len(fm.Series) > 0 {
			p.Series = make(map[string]float64, len(fm.Series))
			for name, get := range fm.Series {
				p.Series[name] = get(r)
			}
		}
		points = append(points, p)
	}
	return points
}

// Spec is the shape handed to the charting collaborator.
type Spec struct {
	Type   Type
	Title  string
	Data   []Point
	XKey   string
	YKeys  []string
	Colors []string
	Height int
}

// Empty reports whether there is nothing to draw.
func (s Spec) Empty() bool {
	return len(s.Data) == 0
}

// Colors returns the first n palette colors, cycling.
func Colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = ColorAt(i)
	}
	return out
}

// Revenue series names.
const (
	SeriesRevenue  = "revenue"
	SeriesExpenses = "expenses"
	SeriesProfit   = "profit"
)

// RevenuePoints charts revenue per period with expense and profit series.
func RevenuePoints(entries []model.RevenueEntry) []Point {
	return ToPoints(entries, FieldMap[model.RevenueEntry]{
		Label: func(e model.RevenueEntry) string { return e.Period },
		Value: func(e model.RevenueEntry) float64 { return e.Revenue },
		Series: map[string]func(model.RevenueEntry) float64{
			SeriesRevenue:  func(e model.RevenueEntry) float64 { return e.Revenue },
			SeriesExpenses: func(e model.RevenueEntry) float64 { return e.Expenses },
			SeriesProfit:   func(e model.RevenueEntry) float64 { return e.Profit },
		},
	})
}

// ProjectPoints charts project budgets with a spent series.
func ProjectPoints(projects []model.Project) []Point {
	return ToPoints(projects, FieldMap[model.Project]{
		Label: func(p model.Project) string { return p.Name },
		Value: func(p model.Project) float64 { return p.Budget },
		Series: map[string]func(model.Project) float64{
			"budget": func(p model.Project) float64 { return p.Budget },
			"spent":  func(p model.Project) float64 { return p.Spent },
		},
	})
}

// ProfitDistributionPoints charts each partner's profit share.
func ProfitDistributionPoints(shares []model.ProfitShare) []Point {
	return ToPoints(shares, FieldMap[model.ProfitShare]{
		Label: func(s model.ProfitShare) string { return s.PartnerName },
		Value: func(s model.ProfitShare) float64 { return s.Amount },
	})
}

// RevenueSpec builds the revenue line chart.
func RevenueSpec(entries []model.RevenueEntry, height int) Spec {
	keys := []string{SeriesRevenue, SeriesExpenses, SeriesProfit}
	return Spec{
		Type:   Line,
		Title:  "Revenue",
		Data:   RevenuePoints(entries),
		XKey:   "period",
		YKeys:  keys,
		Colors: Colors(len(keys)),
		Height: height,
	}
}

// ProjectSpec builds the project budget bar chart.
func ProjectSpec(projects []model.Project, height int) Spec {
	keys := []string{"budget", "spent"}
	return Spec{
		Type:   Bar,
		Title:  "Project Budgets",
		Data:   ProjectPoints(projects),
		XKey:   "name",
		YKeys:  keys,
		Colors: Colors(len(keys)),
		Height: height,
	}
}

// ProfitDistributionSpec builds the profit distribution pie chart.
func ProfitDistributionSpec(shares []model.ProfitShare, height int) Spec {
	points := ProfitDistributionPoints(shares)
	return Spec{
		Type:   Pie,
		Title:  "Profit Distribution",
		Data:   points,
		XKey:   "partnerName",
		YKeys:  []string{"amount"},
		Colors: Colors(len(points)),
		Height: height,
	}
}

// SeriesNames returns the series keys present on p, sorted.
func SeriesNames(p Point) []string {
	names := make([]string, 0, len(p.Series))
	for k := range p.Series {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Total sums point values.
func Total(points []Point) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum
}

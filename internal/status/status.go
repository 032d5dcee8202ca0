// Package status maps free-form status labels onto the small set of
// categories the dashboard knows how to color.
package status

import (
	"golang.org/x/text/cases"
)

// Category is the semantic bucket a status label renders as.
type Category string

const (
	Default Category = "default"
	Success Category = "success"
	Warning Category = "warning"
	Info    Category = "info"
	Error   Category = "error"
)

// unknownLabel is what the backend sends when it has no status for a record.
const unknownLabel = "unknown"

// categories is keyed by the case-folded label.
var categories = map[string]Category{
	"active":    Success,
	"paid":      Success,
	"approved":  Success,
	"completed": Success,

	"in progress": Warning,
	"pending":     Warning,
	"on leave":    Warning,

	"planning": Info,
	"draft":    Info,

	"overdue":  Error,
	"rejected": Error,
	"inactive": Error,
}

// Sink receives every classification. It is optional and must not be relied
// on for anything but diagnostics.
type Sink func(label string, c Category)

// Classifier wraps Classify with an optional diagnostic sink.
type Classifier struct {
	sink Sink
}

// New returns a Classifier reporting to sink. A nil sink is allowed.
func New(sink Sink) *Classifier {
	return &Classifier{sink: sink}
}

// Classify returns the category for label and reports it to the sink.
func (c *Classifier) Classify(label string) Category {
	cat := Classify(label)
	if c != nil && c.sink != nil {
		c.sink(label, cat)
	}
	return cat
}

// Classify maps label to a Category. Matching is case-insensitive and exact;
// empty, "Unknown" and unrecognized labels map to Default.
func Classify(label string) Category {
	key := normalize(label)
	if key == "" || key == unknownLabel {
		return Default
	}
	if cat, ok := categories[key]; ok {
		return cat
	}
	return Default
}

// normalize case-folds label. Casers hold state, so one is built per call.
func normalize(label string) string {
	if label == "" {
		return ""
	}
	return cases.Fold().String(label)
}

// Labels returns the recognized labels for cat, in no particular order.
// Default has none.
func Labels(cat Category) []string {
	var out []string
	for label, c := range categories {
		if c == cat {
			out = append(out, label)
		}
	}
	return out
}

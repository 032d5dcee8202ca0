// Package trend classifies period-over-period changes for display.
package trend

import (
	"fmt"
	"math"
)

// Direction is the sign of a change.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Category says whether a change is good news.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Result is a classified change.
type Result struct {
	Direction Direction
	Category  Category
}

// CategoryOf returns r's category, or Neutral when there is no trend.
// Classify never produces Neutral itself.
func CategoryOf(r Result, ok bool) Category {
	if !ok || r.Category == "" {
		return Neutral
	}
	return r.Category
}

// Classify classifies delta. A nil delta yields ok == false and callers
// should render no indicator.
func Classify(delta *float64, higherIsBetter bool) (Result, bool) {
	if delta == nil {
		return Result{}, false
	}

	dir := Up
	if *delta < 0 {
		dir = Down
	}

	good := dir == Up
	if !higherIsBetter {
		good = !good
	}

	cat := Negative
	if good {
		cat = Positive
	}
	return Result{Direction: dir, Category: cat}, true
}

// Format renders delta as a signed integer for counts and as a percentage
// with two fraction digits otherwise.
func Format(delta float64, isCount bool) string {
	if isCount {
		return fmt.Sprintf("%+d", int64(math.Round(delta)))
	}
	return fmt.Sprintf("%+.2f%%", delta)
}

// Change returns the percentage change from previous to current, or nil when
// previous is zero and no meaningful ratio exists.
func Change(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	pct := (current - previous) / math.Abs(previous) * 100
	return &pct
}

// Arrow returns a glyph for r, or "" when there is no trend.
func Arrow(r Result, ok bool) string {
	if !ok {
		return ""
	}
	if r.Direction == Down {
		return "↓"
	}
	return "↑"
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// zeroCurrency is what FormatValue renders for absent amounts.
const zeroCurrency = "$0.00"

// FormatValue renders v as a raw count when isCount is set, otherwise as a
// USD amount. v may be nil, any integer or float type, json.Number or a
// string; absent or unparseable values fall back to "0" / "$0.00".
func FormatValue(v any, isCount bool) string {
	if isCount {
		return formatCount(v)
	}
	f, ok := toFloat(v)
	if !ok {
		return zeroCurrency
	}
	return FormatCurrency(f)
}

// FormatCurrency formats a USD amount with grouping and two decimals.
// e.g., 1234.5 -> "$1,234.50", -3 -> "-$3.00"
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return zeroCurrency
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := humanize.FormatFloat("#,###.##", amount)
	if s == "0.00" {
		sign = ""
	}
	return sign + "$" + s
}

func formatCount(v any) string {
	switch x := v.(type) {
	case nil:
		return "0"
	case string:
		if strings.TrimSpace(x) == "" {
			return "0"
		}
		return x
	case json.Number:
		if x == "" {
			return "0"
		}
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case *float64:
		if x == nil {
			return "0"
		}
		return strconv.FormatFloat(*x, 'f', -1, 64)
	case *int:
		if x == nil {
			return "0"
		}
		return strconv.Itoa(*x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	default:
		return fmt.Sprint(x)
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case *float64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case int:
		return float64(x), true
	case *int:
		if x == nil {
			return 0, false
		}
		return float64(*x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats a currency difference with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return "-" + FormatCurrency(-delta)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

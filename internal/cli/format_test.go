package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue_Currency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatValue(nil, false))
	assert.Equal(t, "$0.00", FormatValue("", false))
	assert.Equal(t, "$0.00", FormatValue("n/a", false))
	assert.Equal(t, "$1,234.50", FormatValue(1234.5, false))
	assert.Equal(t, "$1,234.50", FormatValue("1234.5", false))
	assert.Equal(t, "$7.00", FormatValue(7, false))
	assert.Equal(t, "$1,000,000.00", FormatValue(int64(1_000_000), false))
	assert.Equal(t, "$12.50", FormatValue(json.Number("12.5"), false))
	assert.Equal(t, "-$42.10", FormatValue(-42.1, false))
}

func TestFormatValue_Count(t *testing.T) {
	assert.Equal(t, "7", FormatValue(7, true))
	assert.Equal(t, "0", FormatValue(nil, true))
	assert.Equal(t, "0", FormatValue("", true))
	assert.Equal(t, "12", FormatValue("12", true))
	assert.Equal(t, "1.5", FormatValue(1.5, true))
	assert.Equal(t, "1234", FormatValue(int64(1234), true))
	var nilPtr *float64
	assert.Equal(t, "0", FormatValue(nilPtr, true))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$0.10", FormatCurrency(0.1))
	assert.Equal(t, "$999.99", FormatCurrency(999.99))
	assert.Equal(t, "-$3.00", FormatCurrency(-3))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+$5.00", FormatDelta(15, 10))
	assert.Equal(t, "-$5.00", FormatDelta(10, 15))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", 0))
}

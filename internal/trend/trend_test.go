package trend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestClassify_NilDelta(t *testing.T) {
	_, ok := Classify(nil, true)
	assert.False(t, ok)
	_, ok = Classify(nil, false)
	assert.False(t, ok)
}

func TestClassify_Direction(t *testing.T) {
	for _, d := range []float64{0, 0.001, 1, 42.5, math.MaxFloat64} {
		r, ok := Classify(ptr(d), true)
		require.True(t, ok)
		assert.Equal(t, Up, r.Direction, "delta %v", d)
	}
	for _, d := range []float64{-0.001, -1, -42.5, -math.MaxFloat64} {
		r, ok := Classify(ptr(d), true)
		require.True(t, ok)
		assert.Equal(t, Down, r.Direction, "delta %v", d)
	}
}

func TestClassify_CategoryFlipsWithPreference(t *testing.T) {
	for _, d := range []float64{-100, -0.5, 0, 0.5, 100} {
		hi, _ := Classify(ptr(d), true)
		lo, _ := Classify(ptr(d), false)
		assert.NotEqual(t, hi.Category, lo.Category, "delta %v", d)
		assert.Equal(t, hi.Direction, lo.Direction, "delta %v", d)
	}
}

func TestClassify_Categories(t *testing.T) {
	r, _ := Classify(ptr(5), true)
	assert.Equal(t, Positive, r.Category)
	r, _ = Classify(ptr(-5), true)
	assert.Equal(t, Negative, r.Category)
	r, _ = Classify(ptr(5), false)
	assert.Equal(t, Negative, r.Category)
	r, _ = Classify(ptr(-5), false)
	assert.Equal(t, Positive, r.Category)
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, Neutral, CategoryOf(Classify(nil, true)))
	assert.Equal(t, Positive, CategoryOf(Classify(ptr(1), true)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "+3", Format(3, true))
	assert.Equal(t, "-2", Format(-2, true))
	assert.Equal(t, "+0", Format(0, true))
	assert.Equal(t, "+12.50%", Format(12.5, false))
	assert.Equal(t, "-3.25%", Format(-3.25, false))
	assert.Equal(t, "+0.00%", Format(0, false))
}

func TestChange(t *testing.T) {
	assert.Nil(t, Change(10, 0))
	c := Change(150, 100)
	require.NotNil(t, c)
	assert.InDelta(t, 50.0, *c, 1e-9)
	c = Change(-50, -100)
	require.NotNil(t, c)
	assert.InDelta(t, 50.0, *c, 1e-9)
}

func TestArrow(t *testing.T) {
	assert.Equal(t, "", Arrow(Classify(nil, true)))
	assert.Equal(t, "↑", Arrow(Classify(ptr(0), true)))
	assert.Equal(t, "↓", Arrow(Classify(ptr(-1), false)))
}

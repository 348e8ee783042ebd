package pid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifferentiator_ColdStartReturnsBaseline(t *testing.T) {
	d := NewDifferentiator(1.5)

	// The first call reports the initial value, not the observation.
	assert.Equal(t, 1.5, d.Compute(99.0, 0.0))
}

func TestDifferentiator_TwoSampleSlope(t *testing.T) {
	d := NewDifferentiator(0.0)

	assert.Equal(t, 0.0, d.Compute(5.0, 10.0))
	// slope = (9 - 5) / 2
	assert.Equal(t, 2.0, d.Compute(9.0, 12.0))
}

func TestDifferentiator_OverwritesState(t *testing.T) {
	d := NewDifferentiator(0.0)

	d.Compute(0.0, 0.0)
	assert.Equal(t, 1.0, d.Compute(1.0, 1.0))
	// Slope relative to the previous sample, not the first one.
	assert.Equal(t, -3.0, d.Compute(-2.0, 2.0))
}

func TestDifferentiator_ZeroDtIsNonFinite(t *testing.T) {
	d := NewDifferentiator(0.0)
	d.Compute(5.0, 1.0)

	// Distinct values over a zero-width interval divide to ±Inf.
	assert.True(t, math.IsInf(d.Compute(9.0, 1.0), 1))

	d = NewDifferentiator(0.0)
	d.Compute(5.0, 1.0)
	// 0/0 is NaN.
	assert.True(t, math.IsNaN(d.Compute(5.0, 1.0)))
}

func TestDifferentiator_NegativeDt(t *testing.T) {
	d := NewDifferentiator(0.0)
	d.Compute(5.0, 10.0)

	// Decreasing timestamps are not rejected; the slope flips sign.
	assert.Equal(t, -2.0, d.Compute(9.0, 8.0))
}

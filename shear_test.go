package segchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinePerfectFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7} // y = 1 + 2x

	xm, ym, alpha, err := fitLine(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, xm, 1e-9)
	assert.InDelta(t, 4.0, ym, 1e-9)
	assert.InDelta(t, 2.0, alpha, 1e-9)
}

func TestFitLineSingular(t *testing.T) {
	_, _, _, err := fitLine([]float64{5, 5, 5}, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestShortLineAcceptRejectsSteepSlope(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, 20} // slope 10, far above any reasonable bound
	heights := []float64{3, 3, 3}
	assert.False(t, shortLineAccept(xs, ys, heights, 0.3, 2, 0.05))
}

func TestShortLineAcceptAcceptsFlatLine(t *testing.T) {
	xs := []float64{0, 6, 12}
	ys := []float64{10, 10, 10}
	heights := []float64{3, 3, 3}
	assert.True(t, shortLineAccept(xs, ys, heights, 0.3, 2, 0.05))
}

func TestIdentityAffineIsNoOp(t *testing.T) {
	a := IdentityAffine()
	tx, ty := a.apply(3, 4)
	assert.Equal(t, 3.0, tx)
	assert.Equal(t, 4.0, ty)
}

func TestFitVerticalShearConverges(t *testing.T) {
	// Four single-point "segments" on a line tilted by slope 0.1.
	points := [][]Point{
		{{X: 0, Y: 0, Link: 0}},
		{{X: 10, Y: 1, Link: 0}},
		{{X: 20, Y: 2, Link: 0}},
		{{X: 30, Y: 3, Link: 0}},
	}
	shear, _, _, err := fitVerticalShear(points, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, shear, 1e-3)
}

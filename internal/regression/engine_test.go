package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addAll(e *Engine, pts ...[2]float64) {
	for _, p := range pts {
		e.AddPoint(p[0], p[1])
	}
}

func TestStats_CollinearData(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 2}, [2]float64{2, 4}, [2]float64{3, 6}, [2]float64{4, 8})

	d, err := e.Stats()
	require.NoError(t, err)

	assert.Equal(t, 4, d.N)
	assert.InDelta(t, 2.0, d.Forward.Slope, 1e-12)
	assert.InDelta(t, 0.0, d.Forward.Intercept, 1e-12)
	assert.InDelta(t, 1.0, d.R, 1e-12)
	assert.InDelta(t, 0.0, d.SE, 1e-9)
	// A perfect correlation leaves the Student t and Fisher Z undefined.
	assert.False(t, d.HasStudentT)
	assert.False(t, d.HasFisherZ)
}

func TestStats_TextbookExample(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 2}, [2]float64{4, 3})

	d, err := e.Stats()
	require.NoError(t, err)

	assert.InDelta(t, 0.5, d.Forward.Intercept, 1e-6)
	assert.InDelta(t, 0.6, d.Forward.Slope, 1e-6)
	require.True(t, d.HasReverse)
	// The reverse line is its own regression, not the forward line inverted.
	assert.Greater(t, math.Abs(1/0.6-d.Reverse.Slope), 1e-6)
	assert.True(t, d.HasStudentT)
	assert.True(t, d.HasFisherZ)
	assert.InDelta(t, 0.5*math.Log((1+d.R)/(1-d.R)), d.FisherZ, 1e-12)
	assert.InDelta(t, d.SE*math.Sqrt(4.0/2.0), d.SampleSE, 1e-12)
	// The variance decomposition sums back to the total.
	assert.InDelta(t, d.VarTotal, d.VarExplained+d.VarUnexplained, 1e-9)
}

func TestStats_IdenticalXIsDegenerate(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{3, 1}, [2]float64{3, 2}, [2]float64{3, 5})

	_, err := e.Stats()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerate))
}

func TestStats_NoData(t *testing.T) {
	_, err := NewEngine().Stats()
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestCorrelationAlt_AgreesWithPrimaryFormula(t *testing.T) {
	tests := []struct {
		name string
		pts  [][2]float64
	}{
		{"textbook", [][2]float64{{1, 1}, {2, 2}, {3, 2}, {4, 3}}},
		{"negative slope", [][2]float64{{0, 9}, {1, 7.2}, {2, 5.1}, {3, 3.3}, {4, 0.8}}},
		{"scattered", [][2]float64{{1.5, 2.1}, {2.5, 1.7}, {3.1, 4.4}, {4.8, 3.9}, {6.2, 7.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			addAll(e, tt.pts...)

			d, err := e.Stats()
			require.NoError(t, err)
			alt, err := e.CorrelationAlt()
			require.NoError(t, err)

			assert.InEpsilon(t, d.R, alt, 1e-9)
		})
	}
}

func TestCorrectPoint_InvalidatesCache(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 2}, [2]float64{4, 3})

	before, err := e.Stats()
	require.NoError(t, err)
	require.True(t, e.Cached())

	require.NoError(t, e.CorrectPoint(3, 3, 3))
	assert.False(t, e.Cached())
	require.NoError(t, e.CorrectPoint(4, 4, 4))

	after, err := e.Stats()
	require.NoError(t, err)
	assert.NotEqual(t, before.R, after.R)
	// (1,1)(2,2)(3,3)(4,4) is perfectly collinear.
	assert.InDelta(t, 1.0, after.R, 1e-12)
}

func TestCorrectPoint_SameValuesKeepCache(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 2})

	_, err := e.Stats()
	require.NoError(t, err)

	require.NoError(t, e.CorrectPoint(2, 2, 2))
	assert.True(t, e.Cached())
}

func TestCorrectPoint_IndexOutOfRange(t *testing.T) {
	e := NewEngine()
	e.AddPoint(1, 1)

	for _, idx := range []int{0, -1, 2} {
		err := e.CorrectPoint(idx, 5, 5)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d", idx)
	}
}

func TestReverseLine_DegenerateY(t *testing.T) {
	e := NewEngine()
	// All y identical: the forward radicand for y is zero too, so the whole
	// computation is degenerate.
	addAll(e, [2]float64{1, 5}, [2]float64{2, 5}, [2]float64{3, 5})

	_, err := e.ReverseLine()
	assert.True(t, errors.Is(err, ErrDegenerate))
}

func TestResidual(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 2}, [2]float64{4, 3})

	yhat, residual, deviations, err := e.Residual(2, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5+0.6*2, yhat, 1e-9)
	assert.InDelta(t, yhat-3, residual, 1e-9)
	assert.Greater(t, deviations, 0.0)
}

func TestAddPoint_InvalidatesCache(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 2})

	_, err := e.Stats()
	require.NoError(t, err)
	require.True(t, e.Cached())

	e.AddPoint(4, 3)
	assert.False(t, e.Cached())
}

func TestPointAt(t *testing.T) {
	e := NewEngine()
	addAll(e, [2]float64{1, 10}, [2]float64{2, 20})

	p, err := e.PointAt(2)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 2, Y: 20}, p)

	_, err = e.PointAt(3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

// Package regression implements the least-squares and correlation engine: an
// ordered, mutable set of (x, y) points with memoized derived statistics that
// are rebuilt in full whenever the data changes.
package regression

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoData is returned when a statistic is requested before any point
	// has been entered.
	ErrNoData = errors.New("no data points entered")
	// ErrDegenerate is returned when the data admits no answer: all x (or y)
	// values identical, or a zero denominator.
	ErrDegenerate = errors.New("degenerate data")
	// ErrIndexOutOfRange is returned for a point index outside 1..n.
	ErrIndexOutOfRange = errors.New("point index out of range")
)

// Point is one (x, y) observation. The 1-based position in the set is the
// point's identity for display and correction.
type Point struct {
	X float64
	Y float64
}

// Line is a fitted regression line.
type Line struct {
	Intercept float64
	Slope     float64
}

// At evaluates the line at the given coordinate.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// Derived holds every statistic computed from the current point set. It is
// rebuilt in full on demand and discarded on any mutation; it is never
// partially stale.
type Derived struct {
	N int

	// First pass.
	SumX, SumY   float64
	SumXY        float64
	SumX2, SumY2 float64

	MeanX, MeanY float64

	// R is the linear correlation coefficient.
	R float64
	// Forward is the least-squares line predicting y from x.
	Forward Line
	// SE is the population standard error of estimate of y on x.
	SE float64
	// SampleSE is SE adjusted to the sample form, SE*sqrt(n/(n-2)).
	SampleSE    float64
	HasSampleSE bool
	// StudentT tests the null hypothesis R = 0 with n-2 degrees of freedom.
	// Undefined when n <= 2 or |R| = 1.
	StudentT    float64
	HasStudentT bool
	// FisherZ is Fisher's transform of R, undefined at |R| = 1.
	FisherZ    float64
	HasFisherZ bool

	// Second pass, over centered values.
	SumDX2, SumDY2 float64
	SumDXDY        float64
	// SX, SY are the population standard deviations; SXY the covariance.
	SX, SY, SXY float64
	// Variance decomposition around the forward line.
	VarTotal, VarExplained, VarUnexplained float64

	// Reverse is the least-squares line predicting x from y. Absent when
	// n*SumY2 - SumY^2 is zero; the forward statistics remain valid.
	Reverse    Line
	HasReverse bool
	ReverseSE  float64
}

// Engine owns the point set and the derived-statistics cache.
type Engine struct {
	points []Point
	cached *Derived
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Len returns the number of points.
func (e *Engine) Len() int {
	return len(e.points)
}

// Points returns a copy of the point set in entry order.
func (e *Engine) Points() []Point {
	out := make([]Point, len(e.points))
	copy(out, e.points)
	return out
}

// PointAt returns the point at the 1-based index.
func (e *Engine) PointAt(index int) (Point, error) {
	if index < 1 || index > len(e.points) {
		return Point{}, fmt.Errorf("%w: %d (have %d points)", ErrIndexOutOfRange, index, len(e.points))
	}
	return e.points[index-1], nil
}

// AddPoint appends a point and invalidates the derived statistics.
func (e *Engine) AddPoint(x, y float64) {
	e.points = append(e.points, Point{X: x, Y: y})
	e.cached = nil
}

// CorrectPoint overwrites the point at the 1-based index. The cache is only
// invalidated when a coordinate actually changes.
func (e *Engine) CorrectPoint(index int, x, y float64) error {
	if index < 1 || index > len(e.points) {
		return fmt.Errorf("%w: %d (have %d points)", ErrIndexOutOfRange, index, len(e.points))
	}
	p := &e.points[index-1]
	if p.X != x || p.Y != y {
		p.X = x
		p.Y = y
		e.cached = nil
	}
	return nil
}

// Reset discards all points and the cache.
func (e *Engine) Reset() {
	e.points = nil
	e.cached = nil
}

// Cached reports whether the derived statistics are currently valid.
func (e *Engine) Cached() bool {
	return e.cached != nil
}

// Stats returns the full derived-statistics set, computing and memoizing it
// when the cache is empty.
func (e *Engine) Stats() (*Derived, error) {
	if e.cached != nil {
		return e.cached, nil
	}
	d, err := e.compute()
	if err != nil {
		return nil, err
	}
	e.cached = d
	return d, nil
}

// ForwardLine returns the least-squares line of y on x.
func (e *Engine) ForwardLine() (Line, error) {
	d, err := e.Stats()
	if err != nil {
		return Line{}, err
	}
	return d.Forward, nil
}

// ReverseLine returns the least-squares line of x on y.
func (e *Engine) ReverseLine() (Line, error) {
	d, err := e.Stats()
	if err != nil {
		return Line{}, err
	}
	if !d.HasReverse {
		return Line{}, fmt.Errorf("%w: n*Sum(y^2) - (Sum y)^2 is zero", ErrDegenerate)
	}
	return d.Reverse, nil
}

// Residual evaluates the forward line at x and returns the predicted value,
// the residual yhat-y, and the deviation |y-yhat| expressed in standard
// errors (0 when SE is zero).
func (e *Engine) Residual(x, y float64) (yhat, residual, deviations float64, err error) {
	d, statsErr := e.Stats()
	if statsErr != nil {
		return 0, 0, 0, statsErr
	}
	yhat = d.Forward.At(x)
	residual = yhat - y
	if d.SE > 0 {
		deviations = math.Abs(y-yhat) / d.SE
	}
	return yhat, residual, deviations, nil
}

// CorrelationAlt computes R by the second formula,
// Sum((x-mx)(y-my)) / ((n-1)*sx*sy), with sample standard deviations so the
// result is algebraically identical to the primary formula. It recomputes
// from the raw points as an independent cross-check.
func (e *Engine) CorrelationAlt() (float64, error) {
	n := len(e.points)
	if n == 0 {
		return 0, ErrNoData
	}
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 points", ErrDegenerate)
	}
	var sumX, sumY float64
	for _, p := range e.points {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sx, sy, cross float64
	for _, p := range e.points {
		dx := p.X - meanX
		dy := p.Y - meanY
		sx += dx * dx
		sy += dy * dy
		cross += dx * dy
	}
	sx = math.Sqrt(sx / float64(n-1))
	sy = math.Sqrt(sy / float64(n-1))
	if sx == 0 || sy == 0 {
		return 0, fmt.Errorf("%w: zero standard deviation (sx=%v, sy=%v)", ErrDegenerate, sx, sy)
	}
	return cross / (float64(n-1) * sx * sy), nil
}

func (e *Engine) compute() (*Derived, error) {
	n := len(e.points)
	if n == 0 {
		return nil, ErrNoData
	}

	d := &Derived{N: n}
	for _, p := range e.points {
		d.SumX += p.X
		d.SumY += p.Y
		d.SumXY += p.X * p.Y
		d.SumX2 += p.X * p.X
		d.SumY2 += p.Y * p.Y
	}
	fn := float64(n)
	d.MeanX = d.SumX / fn
	d.MeanY = d.SumY / fn

	denomX := fn*d.SumX2 - d.SumX*d.SumX
	denomY := fn*d.SumY2 - d.SumY*d.SumY
	if denomX <= 0 || denomY <= 0 {
		return nil, fmt.Errorf("%w: radicands n*Sum(x^2)-(Sum x)^2 = %v, n*Sum(y^2)-(Sum y)^2 = %v",
			ErrDegenerate, denomX, denomY)
	}

	d.R = (fn*d.SumXY - d.SumX*d.SumY) / (math.Sqrt(denomX) * math.Sqrt(denomY))
	d.Forward = Line{
		Intercept: (d.SumY*d.SumX2 - d.SumX*d.SumXY) / denomX,
		Slope:     (fn*d.SumXY - d.SumX*d.SumY) / denomX,
	}

	// The radicand can dip below zero by rounding error on collinear data.
	seRad := (d.SumY2 - d.Forward.Intercept*d.SumY - d.Forward.Slope*d.SumXY) / fn
	if seRad < 0 {
		seRad = 0
	}
	d.SE = math.Sqrt(seRad)

	// Collinear data computes R within rounding error of 1 rather than
	// exactly 1, so the perfect-fit cutoff needs a tolerance.
	perfect := d.R*d.R >= 1-1e-12
	if n > 2 {
		d.SampleSE = d.SE * math.Sqrt(fn/float64(n-2))
		d.HasSampleSE = true
		if !perfect {
			d.StudentT = d.R * math.Sqrt(float64(n-2)) / math.Sqrt(1-d.R*d.R)
			d.HasStudentT = true
		}
	}
	if !perfect {
		d.FisherZ = 0.5 * math.Log((1+d.R)/(1-d.R))
		d.HasFisherZ = true
	}

	// Second pass needs the means, so it runs after the first.
	for _, p := range e.points {
		dx := p.X - d.MeanX
		dy := p.Y - d.MeanY
		d.SumDX2 += dx * dx
		d.SumDY2 += dy * dy
		d.SumDXDY += dx * dy

		yhat := d.Forward.At(p.X)
		d.VarUnexplained += (p.Y - yhat) * (p.Y - yhat)
		d.VarExplained += (yhat - d.MeanY) * (yhat - d.MeanY)
	}
	d.VarTotal = d.SumDY2
	d.SX = math.Sqrt(d.SumDX2 / fn)
	d.SY = math.Sqrt(d.SumDY2 / fn)
	d.SXY = d.SumDXDY / fn

	if denomY != 0 {
		d.Reverse = Line{
			Intercept: (d.SumX*d.SumY2 - d.SumY*d.SumXY) / denomY,
			Slope:     (fn*d.SumXY - d.SumX*d.SumY) / denomY,
		}
		d.HasReverse = true
		var sumXDev2 float64
		for _, p := range e.points {
			xhat := d.Reverse.At(p.Y)
			sumXDev2 += (p.X - xhat) * (p.X - xhat)
		}
		d.ReverseSE = math.Sqrt(sumXDev2 / fn)
	}

	return d, nil
}

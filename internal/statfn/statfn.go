// Package statfn wraps the gonum distribution and regression routines the
// helpers rely on.
package statfn

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// NormalCDF returns P(Z <= z) for the standard normal distribution.
func NormalCDF(z float64) float64 {
	return stdNormal.CDF(z)
}

// NormalQuantile returns the z value with P(Z <= z) = p.
func NormalQuantile(p float64) float64 {
	return stdNormal.Quantile(p)
}

// BinomialPMF returns P(X = k) for a binomial distribution with n trials and
// success probability p.
func BinomialPMF(k, n int, p float64) float64 {
	b := distuv.Binomial{N: float64(n), P: p}
	return b.Prob(float64(k))
}

// ChiSquareCDF returns P(X <= x) for a chi-square distribution with df
// degrees of freedom.
func ChiSquareCDF(x float64, df int) float64 {
	c := distuv.ChiSquared{K: float64(df)}
	return c.CDF(x)
}

// ChiSquareQuantile returns the x value with P(X <= x) = p for df degrees of
// freedom.
func ChiSquareQuantile(p float64, df int) float64 {
	c := distuv.ChiSquared{K: float64(df)}
	return c.Quantile(p)
}

// LinFit is the result of the reference least-squares routine.
type LinFit struct {
	Intercept float64
	Slope     float64
	R         float64
}

// LinearFit runs gonum's least-squares regression and sample correlation over
// the given coordinates. It is the reference the regression engine is
// cross-checked against.
func LinearFit(xs, ys []float64) LinFit {
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return LinFit{
		Intercept: alpha,
		Slope:     beta,
		R:         stat.Correlation(xs, ys, nil),
	}
}

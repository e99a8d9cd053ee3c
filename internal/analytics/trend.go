package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Trend is the result of a least-squares fit over the series index.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"`
	Direction string  `json:"direction"`
	Strength  float64 `json:"strength"`
}

// DetectTrend fits value = intercept + slope*index and reports fit quality.
// Strength is |r|; PValue is the two-sided p-value for a non-zero slope.
func DetectTrend(data []float64) (Trend, error) {
	if err := validateSeries(data); err != nil {
		return Trend{}, err
	}

	xs := indexSeries(len(data))
	intercept, slope := stat.LinearRegression(xs, data, nil, false)
	r := stat.Correlation(xs, data, nil)
	if math.IsNaN(r) {
		// Constant series: zero slope, no correlation.
		r = 0
	}

	direction := "downward"
	if slope > 0 {
		direction = "upward"
	}

	return Trend{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r * r,
		PValue:    slopePValue(r, len(data)),
		Direction: direction,
		Strength:  math.Abs(r),
	}, nil
}

// slopePValue computes the two-sided p-value of the regression slope via the
// t statistic t = r*sqrt((n-2)/(1-r^2)) with n-2 degrees of freedom.
func slopePValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		return 1
	}
	denom := 1 - r*r
	if denom <= 0 {
		// Perfect fit.
		return 0
	}

	t := math.Abs(r) * math.Sqrt(df/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(t)
}

func indexSeries(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

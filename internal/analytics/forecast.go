package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
)

// Forecast extends a series `horizon` steps beyond its end.
type Forecast struct {
	Predictions         []float64 `json:"predictions"`
	ConfidenceIntervals Intervals `json:"confidence_intervals"`
	Confidence          float64   `json:"confidence"`
}

// Intervals are the per-step lower and upper confidence bounds.
type Intervals struct {
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// DefaultForecastConfidence is used when the request omits a level.
const DefaultForecastConfidence = 0.95

// PredictFuture extrapolates a least-squares fit of the series over its
// index. Intervals are prediction ± z·σ where σ is the residual standard
// deviation and z the normal quantile of (1+confidence)/2. A perfect linear
// series therefore has zero-width intervals.
func PredictFuture(data []float64, horizon int, confidence float64) (Forecast, error) {
	if err := validateSeries(data); err != nil {
		return Forecast{}, err
	}
	if horizon < 1 {
		return Forecast{}, errors.ValidationError("horizon must be at least 1").
			WithContext("horizon", horizon)
	}
	if confidence <= 0 || confidence >= 1 {
		return Forecast{}, errors.ValidationError("confidence must be between 0 and 1 exclusive").
			WithContext("confidence", confidence)
	}

	xs := indexSeries(len(data))
	intercept, slope := stat.LinearRegression(xs, data, nil, false)

	residuals := make([]float64, len(data))
	for i, v := range data {
		residuals[i] = v - (intercept + slope*xs[i])
	}
	sigma := math.Sqrt(stat.Moment(2, residuals, nil))

	z := distuv.UnitNormal.Quantile((1 + confidence) / 2)
	margin := z * sigma

	n := len(data)
	forecast := Forecast{
		Predictions: make([]float64, horizon),
		ConfidenceIntervals: Intervals{
			Lower: make([]float64, horizon),
			Upper: make([]float64, horizon),
		},
		Confidence: confidence,
	}
	for i := 0; i < horizon; i++ {
		pred := intercept + slope*float64(n+i)
		forecast.Predictions[i] = pred
		forecast.ConfidenceIntervals.Lower[i] = pred - margin
		forecast.ConfidenceIntervals.Upper[i] = pred + margin
	}

	return forecast, nil
}

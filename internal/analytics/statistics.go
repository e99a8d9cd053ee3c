package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
)

// Statistics holds descriptive statistics for a series. Std is the
// population standard deviation; Kurtosis is excess kurtosis (normal = 0).
type Statistics struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

const minPoints = 2

// validateSeries rejects series that are too short or contain NaN/Inf.
func validateSeries(data []float64) error {
	if len(data) < minPoints {
		return errors.ValidationError("insufficient data points for analysis").
			WithContext("points", len(data)).
			WithContext("required", minPoints)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.ValidationError("data contains non-finite values").
				WithContext("index", i)
		}
	}
	return nil
}

// Describe computes descriptive statistics over the series. Population
// moments are used throughout so constant series yield zero skewness and
// kurtosis rather than NaN.
func Describe(data []float64) (Statistics, error) {
	if err := validateSeries(data); err != nil {
		return Statistics{}, err
	}

	variance := stat.Moment(2, data, nil)
	s := Statistics{
		Mean:   stat.Mean(data, nil),
		Median: median(data),
		Std:    math.Sqrt(variance),
		Min:    floats.Min(data),
		Max:    floats.Max(data),
	}

	if variance > 0 {
		s.Skewness = stat.Moment(3, data, nil) / math.Pow(variance, 1.5)
		s.Kurtosis = stat.Moment(4, data, nil)/(variance*variance) - 3
	}

	return s, nil
}

func median(data []float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

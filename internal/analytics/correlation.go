package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
)

// CorrelationMatrix computes pairwise Pearson correlations between named
// series. All series must share the same length (at least 2 points). A
// constant series correlates at 0 with everything and 1 with itself.
func CorrelationMatrix(series map[string][]float64) (map[string]map[string]float64, error) {
	if len(series) < 2 {
		return nil, errors.ValidationError("at least two series are required").
			WithContext("series", len(series))
	}

	names := make([]string, 0, len(series))
	length := -1
	for name, values := range series {
		if err := validateSeries(values); err != nil {
			return nil, err
		}
		if length == -1 {
			length = len(values)
		} else if len(values) != length {
			return nil, errors.ValidationError("all series must have the same length").
				WithContext("series", name).
				WithContext("length", len(values)).
				WithContext("expected", length)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	matrix := make(map[string]map[string]float64, len(names))
	for _, a := range names {
		row := make(map[string]float64, len(names))
		for _, b := range names {
			if a == b {
				row[b] = 1
				continue
			}
			r := stat.Correlation(series[a], series[b], nil)
			if math.IsNaN(r) {
				r = 0
			}
			row[b] = r
		}
		matrix[a] = row
	}

	return matrix, nil
}

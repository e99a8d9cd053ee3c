package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
)

// Anomaly marks a single outlier point. Score is the absolute z-score of the
// point; Severity measures how far the score exceeds the detection cutoff,
// relative to the cutoff.
type Anomaly struct {
	Index    int     `json:"index"`
	Value    float64 `json:"value"`
	Score    float64 `json:"score"`
	Severity float64 `json:"severity"`
}

// DefaultAnomalyThreshold reports the top 5% most deviant points.
const DefaultAnomalyThreshold = 0.95

// DetectAnomalies flags points whose absolute z-score exceeds the threshold
// quantile of all scores in the series. The detector is deterministic: no
// sampled forests, the same series always yields the same anomalies. A
// constant series has no anomalies.
func DetectAnomalies(data []float64, threshold float64) ([]Anomaly, error) {
	if err := validateSeries(data); err != nil {
		return nil, err
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, errors.ValidationError("threshold must be between 0 and 1 exclusive").
			WithContext("threshold", threshold)
	}

	mean := stat.Mean(data, nil)
	std := math.Sqrt(stat.Moment(2, data, nil))
	if std == 0 {
		return []Anomaly{}, nil
	}

	scores := make([]float64, len(data))
	for i, v := range data {
		scores[i] = math.Abs(v-mean) / std
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	cutoff := stat.Quantile(threshold, stat.Empirical, sorted, nil)

	anomalies := []Anomaly{}
	for i, score := range scores {
		if score <= cutoff {
			continue
		}
		severity := score - cutoff
		if cutoff > 0 {
			severity /= cutoff
		}
		anomalies = append(anomalies, Anomaly{
			Index:    i,
			Value:    data[i],
			Score:    score,
			Severity: severity,
		})
	}

	return anomalies, nil
}

package analytics

import (
	"fmt"
	"math"
)

// Insight is a human-readable finding derived from the series.
type Insight struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Impact      string  `json:"impact"`
}

const (
	strongTrendStrength = 0.7
	highImpactSlope     = 0.5
	heavyTailKurtosis   = 2.0
)

// GenerateInsights reports notable findings: a strong trend and a
// heavy-tailed distribution. Returns an empty slice when nothing stands out.
func GenerateInsights(data []float64) ([]Insight, error) {
	if err := validateSeries(data); err != nil {
		return nil, err
	}

	stats, err := Describe(data)
	if err != nil {
		return nil, err
	}
	trend, err := DetectTrend(data)
	if err != nil {
		return nil, err
	}

	insights := []Insight{}

	if trend.Strength > strongTrendStrength {
		impact := "medium"
		if math.Abs(trend.Slope) > highImpactSlope {
			impact = "high"
		}
		insights = append(insights, Insight{
			Type:  "trend",
			Title: fmt.Sprintf("Strong %s trend detected", trend.Direction),
			Description: fmt.Sprintf("The data shows a strong %s trend with %.2f%% confidence",
				trend.Direction, trend.Strength*100),
			Confidence: trend.Strength,
			Impact:     impact,
		})
	}

	if stats.Kurtosis > heavyTailKurtosis {
		insights = append(insights, Insight{
			Type:        "distribution",
			Title:       "Unusual data distribution detected",
			Description: "The data shows significant outliers and non-normal distribution",
			Confidence:  0.8,
			Impact:      "medium",
		})
	}

	return insights, nil
}

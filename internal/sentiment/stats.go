package sentiment

// Stats aggregates a completed batch of results.
type Stats struct {
	Positive          int     `json:"positive"`
	Negative          int     `json:"negative"`
	Neutral           int     `json:"neutral"`
	Average           float64 `json:"average"`
	StrongestPositive *Result `json:"strongest_positive"`
	StrongestNegative *Result `json:"strongest_negative"`
}

// Aggregate tallies labels, averages scores and picks the strongest entry of
// each polarity. Ties go to the first occurrence in input order. The
// strongest pointers reference entries of the results slice itself, so the
// response always echoes literal batch entries.
func Aggregate(results []Result) Stats {
	var stats Stats
	if len(results) == 0 {
		return stats
	}

	var sum float64
	for i := range results {
		r := &results[i]
		sum += r.Score

		switch r.Label {
		case LabelPositive:
			stats.Positive++
			if stats.StrongestPositive == nil || r.Score > stats.StrongestPositive.Score {
				stats.StrongestPositive = r
			}
		case LabelNegative:
			stats.Negative++
			if stats.StrongestNegative == nil || r.Score < stats.StrongestNegative.Score {
				stats.StrongestNegative = r
			}
		case LabelNeutral:
			stats.Neutral++
		}
	}

	stats.Average = sum / float64(len(results))
	return stats
}

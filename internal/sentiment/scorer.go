package sentiment

import "math"

// Label classifies the polarity of a scored text.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// Result is the score for a single input text.
type Result struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Text       string  `json:"text"`
}

// LexiconInfo reports the effective lexicon sizes used for a request.
type LexiconInfo struct {
	PositiveWords int `json:"positive_words"`
	NegativeWords int `json:"negative_words"`
}

// Report is the full response for a batch of texts.
type Report struct {
	LexiconInfo LexiconInfo `json:"lexicon_info"`
	Sentiments  []Result    `json:"sentiments"`
	Stats       Stats       `json:"stats"`
}

const (
	// lookback is how many preceding tokens are scanned for negation and
	// intensifier markers.
	lookback = 3

	intensifiedWeight = 2.0
	negatedWeight     = 0.5

	// neutralThreshold is the normalized-score magnitude below which a text
	// is labeled Neutral.
	neutralThreshold = 0.05
	// neutralConfidencePenalty shrinks confidence for weak or absent signal.
	neutralConfidencePenalty = 0.8

	// Confidence blend weights. Empirically tuned; do not re-balance.
	ratioBlend     = 0.4
	weightBlend    = 0.3
	magnitudeBlend = 0.3
)

// AnalyzeBatch scores each text against the merged lexicon and aggregates
// batch statistics. It is pure: same inputs always produce bit-identical
// outputs, and concurrent calls share no mutable state.
func AnalyzeBatch(texts []string, custom *CustomLexicons) Report {
	lex := BuildLexicon(custom)

	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		results = append(results, scoreText(text, lex))
	}

	return Report{
		LexiconInfo: lex.Info(),
		Sentiments:  results,
		Stats:       Aggregate(results),
	}
}

// scoreText scores a single text. Negation flips which accumulator receives
// a sentiment word's contribution and independently forces its weight to 0.5
// (taking precedence over intensification in the weight value only).
func scoreText(text string, lex Lexicon) Result {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Result{Score: 0, Label: LabelNeutral, Confidence: 0, Text: text}
	}

	var (
		positiveScore  float64
		negativeScore  float64
		sentimentWords int
		totalWeight    float64
	)

	for i, token := range tokens {
		window := tokens[max(0, i-lookback):i]

		negated := anyIn(window, negationMarkers)
		intensified := anyIn(window, intensifierMarkers)

		weight := 1.0
		if intensified {
			weight = intensifiedWeight
		}
		if negated {
			weight = negatedWeight
		}

		if lexWeight, ok := lex.Positive[token]; ok {
			score := lexWeight * weight
			if negated {
				negativeScore += score
			} else {
				positiveScore += score
			}
			sentimentWords++
			totalWeight += weight
		}

		// A token may sit in both tables; both contributions apply.
		if lexWeight, ok := lex.Negative[token]; ok {
			score := lexWeight * weight
			if negated {
				positiveScore += score
			} else {
				negativeScore += score
			}
			sentimentWords++
			totalWeight += weight
		}
	}

	n := float64(len(tokens))

	// The +1 damps scores on short texts and guards division by zero.
	normalized := (positiveScore - negativeScore) / (n + 1)

	sentimentRatio := float64(sentimentWords) / n
	weightFactor := math.Min(totalWeight/(n+1), 1.0)
	scoreMagnitude := math.Min(math.Abs(normalized)*2, 1.0)

	confidence := ratioBlend*sentimentRatio + weightBlend*weightFactor + magnitudeBlend*scoreMagnitude

	// A normalized score of exactly zero always has magnitude below the
	// threshold, so the branch below never sees a Positive/Negative tie.
	var label Label
	if math.Abs(normalized) < neutralThreshold || sentimentWords == 0 {
		label = LabelNeutral
		confidence *= neutralConfidencePenalty
	} else if normalized > 0 {
		label = LabelPositive
	} else {
		label = LabelNegative
	}

	return Result{Score: normalized, Label: label, Confidence: confidence, Text: text}
}

func anyIn(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

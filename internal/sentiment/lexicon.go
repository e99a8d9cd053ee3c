package sentiment

// Built-in lexicons map lowercase words to intensity weights in [1.0, 2.0].
// They are package-level constants in spirit: never mutated after init.
// Per-request copies are made by BuildLexicon so custom additions stay
// scoped to a single request.

var builtinPositive = map[string]float64{
	"good": 1.0, "great": 1.5, "excellent": 2.0, "amazing": 2.0,
	"wonderful": 1.8, "fantastic": 1.8, "happy": 1.5, "pleased": 1.2,
	"delighted": 1.8, "love": 2.0, "awesome": 1.8, "best": 1.5,
	"perfect": 2.0, "brilliant": 1.8, "outstanding": 1.8, "beautiful": 1.5,
	"helpful": 1.2, "impressive": 1.5, "innovative": 1.5, "efficient": 1.2,
	"reliable": 1.2, "recommended": 1.2, "satisfied": 1.2, "positive": 1.0,
	"success": 1.5, "successful": 1.5, "easy": 1.0, "enjoyed": 1.2,
	"beneficial": 1.2, "exceptional": 1.8, "superb": 1.8, "remarkable": 1.5,
	"joy": 1.5, "like": 1.0, "admire": 1.2, "pleasure": 1.2,
	"favorite": 1.2, "smooth": 1.0, "quick": 1.0, "fast": 1.0,
}

var builtinNegative = map[string]float64{
	"bad": 1.0, "poor": 1.2, "terrible": 2.0, "awful": 1.8,
	"horrible": 2.0, "worst": 2.0, "sad": 1.2, "angry": 1.5,
	"upset": 1.2, "hate": 2.0, "disappointing": 1.5, "disappointed": 1.2,
	"frustrating": 1.5, "useless": 1.8, "waste": 1.5, "difficult": 1.2,
	"confusing": 1.2, "unreliable": 1.5, "inefficient": 1.2, "expensive": 1.0,
	"slow": 1.0, "broken": 1.5, "failed": 1.5, "failure": 1.5,
	"problem": 1.2, "issue": 1.0, "bug": 1.0, "error": 1.0,
	"complicated": 1.2, "annoying": 1.2, "inadequate": 1.5, "inferior": 1.5,
	"regret": 1.2, "dislike": 1.2, "unhappy": 1.2, "problematic": 1.2,
	"trouble": 1.0, "hard": 1.0,
}

// negationMarkers flip the polarity of sentiment words appearing within the
// three following tokens and force their weight to 0.5.
var negationMarkers = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "don't": {}, "doesn't": {},
	"didn't": {}, "can't": {}, "won't": {}, "isn't": {}, "wasn't": {},
	"weren't": {},
}

// intensifierMarkers double the weight of sentiment words appearing within
// the three following tokens (unless a negation also applies).
var intensifierMarkers = map[string]struct{}{
	"very": {}, "extremely": {}, "absolutely": {}, "completely": {},
	"totally": {}, "utterly": {}, "incredibly": {}, "really": {},
}

// customWeight is the weight assigned to caller-supplied lexicon words.
const customWeight = 1.0

// CustomLexicons carries per-request lexicon additions.
type CustomLexicons struct {
	Positive []string `json:"positive,omitempty"`
	Negative []string `json:"negative,omitempty"`
}

// Lexicon is a request-scoped pair of word-to-weight tables.
type Lexicon struct {
	Positive map[string]float64
	Negative map[string]float64
}

// BuildLexicon clones the built-in tables and overlays any custom words at
// weight 1.0, lower-cased. Custom entries win collisions with built-ins.
func BuildLexicon(custom *CustomLexicons) Lexicon {
	lex := Lexicon{
		Positive: make(map[string]float64, len(builtinPositive)),
		Negative: make(map[string]float64, len(builtinNegative)),
	}
	for w, weight := range builtinPositive {
		lex.Positive[w] = weight
	}
	for w, weight := range builtinNegative {
		lex.Negative[w] = weight
	}

	if custom != nil {
		for _, w := range custom.Positive {
			lex.Positive[lower(w)] = customWeight
		}
		for _, w := range custom.Negative {
			lex.Negative[lower(w)] = customWeight
		}
	}

	return lex
}

// Info reports the table sizes for the response envelope.
func (l Lexicon) Info() LexiconInfo {
	return LexiconInfo{
		PositiveWords: len(l.Positive),
		NegativeWords: len(l.Negative),
	}
}

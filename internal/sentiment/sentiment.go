package sentiment

import (
	"strings"
	"unicode"
)

// Scorer turns free text into a polarity score in [-1, 1]
type Scorer interface {
	Score(text string) float64
}

// Lexicon is a rule-based scorer. Words carry a weight, a preceding negation
// flips the next weighted word, and intensifiers scale it. Two negations
// cancel, so "can't stop worrying" stays negative.
type Lexicon struct {
	weights      map[string]float64
	negations    map[string]bool
	intensifiers map[string]float64
}

// NewLexicon creates the default English lexicon scorer
func NewLexicon() *Lexicon {
	return &Lexicon{
		weights:      defaultWeights,
		negations:    defaultNegations,
		intensifiers: defaultIntensifiers,
	}
}

var defaultWeights = map[string]float64{
	// positive
	"amazing": 0.9, "awesome": 0.9, "excellent": 1.0, "fantastic": 0.8, "wonderful": 0.9,
	"great": 0.7, "good": 0.6, "nice": 0.5, "happy": 0.8, "glad": 0.6, "joy": 0.8,
	"love": 0.6, "loved": 0.7, "calm": 0.4, "peaceful": 0.6, "relaxed": 0.5,
	"proud": 0.7, "excited": 0.7, "grateful": 0.8, "thankful": 0.7, "hopeful": 0.6,
	"fun": 0.5, "better": 0.4, "best": 0.8, "confident": 0.6, "success": 0.7,
	"win": 0.6, "progress": 0.5, "enjoy": 0.6, "enjoyed": 0.6, "beautiful": 0.8,
	"content": 0.4, "satisfied": 0.5, "energized": 0.6, "rested": 0.4,
	// negative
	"terrible": -1.0, "awful": -0.9, "horrible": -0.9, "bad": -0.7, "worse": -0.6,
	"worst": -1.0, "sad": -0.6, "unhappy": -0.7, "angry": -0.8, "mad": -0.6,
	"upset": -0.6, "anxious": -0.7, "worried": -0.6, "worrying": -0.6, "worry": -0.5,
	"stress": -0.5, "stressed": -0.6, "tired": -0.4, "exhausted": -0.6,
	"lonely": -0.7, "hate": -0.8, "scared": -0.6, "afraid": -0.6, "fear": -0.6,
	"hurt": -0.6, "cry": -0.6, "crying": -0.6, "fail": -0.7, "failed": -0.7,
	"failure": -0.7, "overwhelmed": -0.7, "hopeless": -0.9, "depressed": -0.9,
	"miserable": -0.9, "frustrated": -0.6, "annoyed": -0.5, "confused": -0.3,
	"nervous": -0.5, "panic": -0.7, "pain": -0.6, "sick": -0.5, "problem": -0.4,
}

var defaultNegations = map[string]bool{
	"not": true, "no": true, "never": true, "don't": true, "dont": true,
	"can't": true, "cant": true, "won't": true, "isn't": true, "wasn't": true,
	"didn't": true, "nothing": true, "hardly": true, "stop": true, "quit": true,
}

var defaultIntensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "so": 1.2, "extremely": 1.5, "super": 1.3,
	"incredibly": 1.5, "totally": 1.2, "slightly": 0.6, "somewhat": 0.7, "bit": 0.7,
}

// Score averages the weighted words found in text. Text with no weighted
// words scores 0.
func (l *Lexicon) Score(text string) float64 {
	words := tokenize(text)

	var total float64
	var hits int
	negate := false
	scale := 1.0
	for _, w := range words {
		if l.negations[w] {
			negate = !negate
			continue
		}
		if f, ok := l.intensifiers[w]; ok {
			scale *= f
			continue
		}
		weight, ok := l.weights[w]
		if !ok {
			continue
		}
		weight *= scale
		if negate {
			weight = -weight * 0.5
		}
		total += weight
		hits++
		negate = false
		scale = 1.0
	}

	if hits == 0 {
		return 0
	}
	return Clamp(total / float64(hits))
}

// Clamp bounds a score to [-1, 1]
func Clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

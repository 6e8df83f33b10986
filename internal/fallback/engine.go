package fallback

import (
	"github.com/mrwolf/drmind/internal/classifier"
	"github.com/mrwolf/drmind/internal/models"
)

// Engine produces rule-based responses. It never fails.
type Engine struct {
	src Source
}

// NewEngine creates an engine drawing from src; nil means a runtime-seeded source
func NewEngine(src Source) *Engine {
	if src == nil {
		src = NewRandomSource()
	}
	return &Engine{src: src}
}

// Respond builds a comfort message and exactly three suggestions. A zero
// classification is computed from the journal and sentiment.
func (e *Engine) Respond(mood, journal string, sentiment float64, cls models.Classification) models.ResponseResult {
	if cls == (models.Classification{}) {
		cls = classifier.Classify(journal, mood, sentiment)
	}
	return models.ResponseResult{
		Comfort:     e.Comfort(cls),
		Suggestions: e.Suggestions(mood, cls),
	}
}

// Comfort picks a template for the polarity and appends the topic clause
func (e *Engine) Comfort(cls models.Classification) string {
	pool := comfortMessages[polarityOrNeutral(cls.Polarity)]
	return pool[choose(e.src, len(pool))] + topicSuffix[cls.Topic]
}

// Suggestions returns three suggestions. A topic pool wins over the general
// one; only untopical entries get mood-specific extras, and those are
// shuffled in with the general picks so they may or may not survive the cut.
func (e *Engine) Suggestions(mood string, cls models.Classification) []string {
	if pool, ok := topicSuggestions[suggestionTopic(cls)]; ok {
		return sample(e.src, pool, models.SuggestionCount)
	}

	base := sample(e.src, generalSuggestions[polarityOrNeutral(cls.Polarity)], models.SuggestionCount)
	extras := moodSuggestions[mood]
	if len(extras) == 0 {
		return base
	}

	combined := dedupe(append(base, sample(e.src, extras, min(2, len(extras)))...))
	e.src.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})
	return combined[:models.SuggestionCount]
}

// suggestionTopic picks the pool topic. Creative work gets project
// suggestions while the comfort clause still speaks to work.
func suggestionTopic(cls models.Classification) models.Topic {
	if cls.Topic == models.TopicWork && cls.Creative {
		return models.TopicCreative
	}
	return cls.Topic
}

func polarityOrNeutral(p models.Polarity) models.Polarity {
	if _, ok := comfortMessages[p]; ok {
		return p
	}
	return models.PolarityNeutral
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

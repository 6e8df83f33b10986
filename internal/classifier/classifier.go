package classifier

import (
	"strings"

	"github.com/mrwolf/drmind/internal/models"
)

var studyTerms = []string{
	"study", "exam", "test", "homework", "assignment", "class",
	"school", "college", "university", "learn", "education",
}

var workTerms = []string{
	"work", "job", "project", "deadline", "meeting", "boss", "colleague",
	"career", "business", "build", "app", "code", "programming", "development",
}

var relationshipTerms = []string{
	"friend", "family", "partner", "relationship", "love", "breakup",
	"argument", "people", "social",
}

var creativeTerms = []string{
	"create", "build", "make", "design", "art", "music", "write", "draw",
	"paint", "craft",
}

var positiveMoods = map[string]bool{
	"Joyful": true, "Content": true, "Peaceful": true, "Grateful": true,
	"Loved": true, "Excited": true, "Confident": true, "Satisfied": true,
}

var negativeMoods = map[string]bool{
	"Sad": true, "Angry": true, "Anxious": true, "Stressed": true,
	"Overwhelmed": true, "Devastated": true,
}

// Classify tags a journal entry with a topic and a polarity bucket.
//
// Topic precedence when several vocabularies match is fixed:
// study > work > creative > relationship > none. Creative is also flagged
// on its own, so a work entry that mentions building can still draw
// project suggestions.
//
// Terms are matched as case-insensitive substrings, so "test" also hits
// "latest". An empty journal is always {none, neutral}.
func Classify(journal, mood string, sentiment float64) models.Classification {
	if strings.TrimSpace(journal) == "" {
		return models.Classification{Topic: models.TopicNone, Polarity: models.PolarityNeutral}
	}
	return models.Classification{
		Topic:    DetectTopic(journal),
		Polarity: PolarityOf(mood, sentiment),
		Creative: containsAny(strings.ToLower(journal), creativeTerms),
	}
}

// DetectTopic returns the highest-precedence topic found in text
func DetectTopic(text string) models.Topic {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, studyTerms):
		return models.TopicStudy
	case containsAny(lower, workTerms):
		return models.TopicWork
	case containsAny(lower, creativeTerms):
		return models.TopicCreative
	case containsAny(lower, relationshipTerms):
		return models.TopicRelationship
	default:
		return models.TopicNone
	}
}

// PolarityOf buckets a sentiment score. Mood membership is checked alongside
// the threshold, so a Grateful entry with flat text is still positive.
func PolarityOf(mood string, sentiment float64) models.Polarity {
	if sentiment > models.PositiveThreshold || positiveMoods[mood] {
		return models.PolarityPositive
	}
	if sentiment < models.NegativeThreshold || negativeMoods[mood] {
		return models.PolarityNegative
	}
	return models.PolarityNeutral
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

package models

import (
	"strings"
	"time"
)

// MoodOption is one entry of the fixed mood catalog
type MoodOption struct {
	Emoji string  `json:"emoji"`
	Label string  `json:"label"`
	Value float64 `json:"value"` // rough expected sentiment, not enforced
}

// Moods is the catalog offered by the mood picker, strongly positive first
var Moods = []MoodOption{
	{Emoji: "😃", Label: "Joyful", Value: 0.9},
	{Emoji: "😊", Label: "Content", Value: 0.7},
	{Emoji: "😌", Label: "Peaceful", Value: 0.6},
	{Emoji: "😇", Label: "Grateful", Value: 0.8},
	{Emoji: "🤗", Label: "Loved", Value: 0.8},
	{Emoji: "🥳", Label: "Excited", Value: 0.9},
	{Emoji: "😎", Label: "Confident", Value: 0.7},
	{Emoji: "😋", Label: "Satisfied", Value: 0.6},
	{Emoji: "😤", Label: "Determined", Value: 0.5},
	{Emoji: "😐", Label: "Neutral", Value: 0.0},
	{Emoji: "😕", Label: "Confused", Value: -0.2},
	{Emoji: "😟", Label: "Worried", Value: -0.4},
	{Emoji: "😢", Label: "Sad", Value: -0.6},
	{Emoji: "😞", Label: "Down", Value: -0.7},
	{Emoji: "😩", Label: "Exhausted", Value: -0.5},
	{Emoji: "😡", Label: "Angry", Value: -0.8},
	{Emoji: "😱", Label: "Anxious", Value: -0.6},
	{Emoji: "😖", Label: "Stressed", Value: -0.5},
	{Emoji: "😰", Label: "Overwhelmed", Value: -0.7},
	{Emoji: "😭", Label: "Devastated", Value: -0.9},
}

// LookupMood returns the catalog entry with the given label
func LookupMood(label string) (MoodOption, bool) {
	for _, m := range Moods {
		if m.Label == label {
			return m, true
		}
	}
	return MoodOption{}, false
}

// JournalEntry is a persisted submission. Entries are never edited.
type JournalEntry struct {
	ID          int64     `json:"id"`
	Ref         string    `json:"ref"`
	Mood        string    `json:"mood"`
	Journal     string    `json:"journal"`
	Sentiment   float64   `json:"sentiment"`
	Comfort     string    `json:"comfort_message"`
	Suggestions []string  `json:"suggestions"`
	Source      string    `json:"source,omitempty"` // set on the create response only, never stored
	CreatedAt   time.Time `json:"date"`
}

// SuggestionCount is the number of suggestions every stored entry carries
const SuggestionCount = 3

// ResponseResult is the comfort message and suggestions for one entry
type ResponseResult struct {
	Comfort     string   `json:"comfort"`
	Suggestions []string `json:"suggestions"`
}

// Valid reports a non-empty comfort and at least one non-empty suggestion
func (r ResponseResult) Valid() bool {
	if strings.TrimSpace(r.Comfort) == "" {
		return false
	}
	for _, s := range r.Suggestions {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// Complete reports whether the result satisfies the stored-entry contract:
// non-empty comfort and exactly SuggestionCount non-empty suggestions.
func (r ResponseResult) Complete() bool {
	if strings.TrimSpace(r.Comfort) == "" || len(r.Suggestions) != SuggestionCount {
		return false
	}
	for _, s := range r.Suggestions {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

// Topic is the subject area detected in journal text
type Topic string

// Topic constants, in precedence order
const (
	TopicStudy        Topic = "study"
	TopicWork         Topic = "work"
	TopicCreative     Topic = "creative"
	TopicRelationship Topic = "relationship"
	TopicNone         Topic = "none"
)

// Polarity buckets sentiment and mood together
type Polarity string

// Polarity constants
const (
	PolarityPositive Polarity = "positive"
	PolarityNeutral  Polarity = "neutral"
	PolarityNegative Polarity = "negative"
)

// Classification is computed per request and never stored. Creative is set
// whenever creative terms appear, even when a higher topic wins.
type Classification struct {
	Topic    Topic    `json:"topic"`
	Polarity Polarity `json:"polarity"`
	Creative bool     `json:"creative,omitempty"`
}

// SubmitRequest is the JSON body for creating an entry
type SubmitRequest struct {
	Mood    string `json:"mood"`
	Journal string `json:"journal"`
}

// EntriesResponse is returned by the entries list endpoint
type EntriesResponse struct {
	Entries []JournalEntry `json:"entries"`
}

// Stats are the aggregates shown above the history
type Stats struct {
	TotalEntries int     `json:"total_entries"`
	AvgSentiment float64 `json:"avg_sentiment"`
	PositiveDays int     `json:"positive_days"`
}

// ChartPoint is one sentiment sample for the trend chart
type ChartPoint struct {
	Date      string  `json:"date"`
	Sentiment float64 `json:"sentiment"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status    string            `json:"status"`
	Database  string            `json:"database"`
	Providers map[string]string `json:"providers"`
	Version   string            `json:"version"`
}

// PositiveThreshold is the sentiment above which an entry counts as positive
const PositiveThreshold = 0.3

// NegativeThreshold is the sentiment below which an entry counts as negative
const NegativeThreshold = -0.3

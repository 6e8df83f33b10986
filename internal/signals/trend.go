package signals

import (
	"sort"
	"time"

	"github.com/mrwolf/drmind/internal/models"
)

// Trend is the direction of sentiment over a run of entries
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendSteady    Trend = "steady"
	TrendUnknown   Trend = "not enough entries"
)

// trendMinEntries is the smallest run split into two comparable halves
const trendMinEntries = 4

// trendThreshold is the change in average sentiment treated as a shift
const trendThreshold = 0.15

// MoodTrend compares the average sentiment of the newer half of entries
// with the older half. entries are newest first, as the store returns them.
func MoodTrend(entries []models.JournalEntry) Trend {
	if len(entries) < trendMinEntries {
		return TrendUnknown
	}
	mid := len(entries) / 2
	recent := average(entries[:mid])
	older := average(entries[mid:])

	switch delta := recent - older; {
	case delta >= trendThreshold:
		return TrendImproving
	case delta <= -trendThreshold:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

func average(entries []models.JournalEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Sentiment
	}
	return total / float64(len(entries))
}

// Rhythm describes when entries were written
type Rhythm string

const (
	RhythmClustered Rhythm = "clustered"
	RhythmSteady    Rhythm = "steady"
	RhythmScattered Rhythm = "scattered"
)

// WritingRhythm reports clustered when 70% or more of the entries fall in
// one two hour window, steady when the gaps between entries are even, and
// scattered otherwise or when there are fewer than three entries.
func WritingRhythm(entries []models.JournalEntry) Rhythm {
	if len(entries) < 3 {
		return RhythmScattered
	}

	sorted := make([]time.Time, len(entries))
	for i, e := range entries {
		sorted[i] = e.CreatedAt
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	total := len(sorted)
	for i := 0; i < total; i++ {
		windowEnd := sorted[i].Add(2 * time.Hour)
		inWindow := 0
		for j := i; j < total && sorted[j].Before(windowEnd); j++ {
			inWindow++
		}
		if float64(inWindow)/float64(total) >= 0.7 {
			return RhythmClustered
		}
	}

	var totalGap time.Duration
	for i := 1; i < total; i++ {
		totalGap += sorted[i].Sub(sorted[i-1])
	}
	avgGap := totalGap / time.Duration(total-1)

	var variance float64
	for i := 1; i < total; i++ {
		diff := float64(sorted[i].Sub(sorted[i-1]) - avgGap)
		variance += diff * diff
	}
	variance /= float64(total - 1)

	// Coefficient of variation below 1 counts as even spacing
	avg := float64(avgGap)
	if avg > 0 && variance/(avg*avg) < 1.0 {
		return RhythmSteady
	}
	return RhythmScattered
}

// Themes is the signal summary of a run of entries
type Themes struct {
	TopTerms []TermCount `json:"top_terms"`
	Trend    Trend       `json:"trend"`
	Rhythm   Rhythm      `json:"rhythm"`
}

// Analyze builds Themes for entries, newest first
func Analyze(entries []models.JournalEntry, topN int) Themes {
	return Themes{
		TopTerms: TopTerms(entries, topN),
		Trend:    MoodTrend(entries),
		Rhythm:   WritingRhythm(entries),
	}
}

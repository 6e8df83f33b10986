package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/mrwolf/drmind/internal/models"
	"github.com/mrwolf/drmind/internal/signals"
)

const (
	summaryPreviewLength = 100
	summaryTerms         = 3
)

// FormatDaySummary lists entries created at or after since, oldest first.
// entries are newest first, as the store returns them.
func FormatDaySummary(entries []models.JournalEntry, since time.Time) string {
	var day []models.JournalEntry
	for _, e := range entries {
		if !e.CreatedAt.Before(since) {
			day = append(day, e)
		}
	}
	if len(day) == 0 {
		return "No entries recorded."
	}

	var total float64
	lines := make([]string, 0, len(day))
	for i := len(day) - 1; i >= 0; i-- {
		e := day[i]
		total += e.Sentiment
		lines = append(lines, fmt.Sprintf("- [%s] %s: %s", e.Mood, e.CreatedAt.Format("15:04"), truncate(e.Journal, summaryPreviewLength)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d entries, average sentiment %.2f\n", len(day), total/float64(len(day)))
	if terms := signals.TopTerms(day, summaryTerms); len(terms) > 0 {
		words := make([]string, len(terms))
		for i, t := range terms {
			words[i] = t.Term
		}
		fmt.Fprintf(&b, "On your mind: %s\n", strings.Join(words, ", "))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	return b.String()
}

// truncate cuts s to maxLen user-perceived characters so emoji and
// combining marks are never split
func truncate(s string, maxLen int) string {
	if uniseg.GraphemeClusterCount(s) <= maxLen {
		return s
	}
	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for n := 0; n < maxLen && gr.Next(); n++ {
		b.WriteString(gr.Str())
	}
	return b.String() + "..."
}

package signals

import (
	"reflect"
	"testing"
	"time"

	"github.com/mrwolf/drmind/internal/models"
)

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTerms  int
		wantCount int
		wantFirst string
	}{
		{
			name:      "most frequent first",
			text:      "The exam went badly. Another exam on Friday and the exam results scare me.",
			maxTerms:  3,
			wantCount: 3,
			wantFirst: "exam",
		},
		{
			name:      "removes stopwords",
			text:      "I am going to the store with some people",
			maxTerms:  5,
			wantCount: 1,
			wantFirst: "store",
		},
		{
			name:      "handles empty text",
			text:      "",
			maxTerms:  5,
			wantCount: 0,
		},
		{
			name:      "short words filtered",
			text:      "a an it is go on by up",
			maxTerms:  5,
			wantCount: 0,
		},
		{
			name:      "respects maxTerms",
			text:      "apple banana cherry date elderberry fig grape",
			maxTerms:  3,
			wantCount: 3,
			wantFirst: "apple",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTerms(tt.text, tt.maxTerms)
			if len(got) != tt.wantCount {
				t.Fatalf("ExtractTerms() returned %v, want %d terms", got, tt.wantCount)
			}
			if tt.wantFirst != "" && got[0] != tt.wantFirst {
				t.Errorf("ExtractTerms()[0] = %q, want %q", got[0], tt.wantFirst)
			}
		})
	}
}

func TestTopTermsCountsEntriesNotRepeats(t *testing.T) {
	entries := []models.JournalEntry{
		{Journal: "deadline deadline deadline deadline"},
		{Journal: "Sleep was short, worried about the deadline"},
		{Journal: "Slept well, walked the dog"},
		{Journal: "The dog made me laugh"},
	}

	got := TopTerms(entries, 2)
	want := []TermCount{{"deadline", 2}, {"dog", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopTerms() = %v, want %v", got, want)
	}

	if got := TopTerms(nil, 5); got == nil || len(got) != 0 {
		t.Errorf("TopTerms(nil) = %#v, want empty slice", got)
	}
}

func entriesWithSentiment(values ...float64) []models.JournalEntry {
	out := make([]models.JournalEntry, len(values))
	for i, v := range values {
		out[i] = models.JournalEntry{Sentiment: v}
	}
	return out
}

func TestMoodTrend(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.JournalEntry
		want    Trend
	}{
		{"too few", entriesWithSentiment(0.9, -0.9, 0.1), TrendUnknown},
		{"improving", entriesWithSentiment(0.6, 0.4, -0.2, -0.4), TrendImproving},
		{"declining", entriesWithSentiment(-0.5, -0.3, 0.2, 0.4), TrendDeclining},
		{"steady", entriesWithSentiment(0.2, 0.1, 0.15, 0.1), TrendSteady},
		{"odd length puts extra in older half", entriesWithSentiment(0.8, 0.8, 0, 0, 0), TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoodTrend(tt.entries); got != tt.want {
				t.Errorf("MoodTrend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func entriesAt(times ...time.Time) []models.JournalEntry {
	out := make([]models.JournalEntry, len(times))
	for i, ts := range times {
		out[i] = models.JournalEntry{CreatedAt: ts}
	}
	return out
}

func TestWritingRhythm(t *testing.T) {
	now := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entries []models.JournalEntry
		want    Rhythm
	}{
		{
			name:    "too few entries",
			entries: entriesAt(now, now.Add(time.Hour)),
			want:    RhythmScattered,
		},
		{
			name: "clustered",
			entries: entriesAt(
				now.Add(30*time.Minute),
				now,
				now.Add(10*time.Minute),
				now.Add(20*time.Minute),
			),
			want: RhythmClustered,
		},
		{
			name: "steady",
			entries: entriesAt(
				now.Add(12*time.Hour),
				now.Add(8*time.Hour),
				now.Add(4*time.Hour),
				now,
			),
			want: RhythmSteady,
		},
		{
			name: "scattered",
			entries: entriesAt(
				now,
				now.Add(3*time.Hour),
				now.Add(6*time.Hour),
				now.Add(9*time.Hour),
				now.Add(200*time.Hour),
			),
			want: RhythmScattered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WritingRhythm(tt.entries); got != tt.want {
				t.Errorf("WritingRhythm() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsStopword(t *testing.T) {
	for word, want := range map[string]bool{
		"the":     true,
		"The":     true,
		"feeling": true,
		"exam":    false,
		"worried": false,
	} {
		if got := IsStopword(word); got != want {
			t.Errorf("IsStopword(%q) = %v, want %v", word, got, want)
		}
	}
}

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mrwolf/drmind/internal/models"
)

func sampleEntries() []models.JournalEntry {
	return []models.JournalEntry{
		{
			ID:          2,
			Mood:        "Anxious",
			Journal:     "I have a huge exam tomorrow,\nsay \"help\"",
			Sentiment:   -0.6,
			Comfort:     "Your feelings matter.",
			Suggestions: []string{"Break study into chunks", "Sleep early", "Eat well"},
			CreatedAt:   time.Date(2024, 5, 2, 21, 7, 0, 0, time.UTC),
		},
		{
			ID:          1,
			Mood:        "Joyful",
			Journal:     "Good day",
			Sentiment:   0.756,
			Comfort:     "Wonderful!",
			Suggestions: []string{"Celebrate"},
			CreatedAt:   time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Errorf("expected indented output, got %s", buf.String())
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0]["date"] != "2024-05-02T21:07:00Z" || got[0]["comfort_message"] != "Your feelings matter." {
		t.Errorf("unexpected first record %v", got[0])
	}
	if _, ok := got[0]["id"]; ok {
		t.Error("export should not include internal id")
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Date,Time,Mood,Journal,Sentiment,Comfort Message,Suggestions" {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	want := []string{"2024-05-02", "21:07", "Anxious", `I have a huge exam tomorrow, say "help"`, "-0.60", "Your feelings matter.", "Break study into chunks; Sleep early; Eat well"}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("column %s = %q, want %q", csvHeader[i], first[i], want[i])
		}
	}
	if rows[2][4] != "0.76" {
		t.Errorf("sentiment = %q, want 0.76", rows[2][4])
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Dr. Mind - Mood Journal Entries",
		"Entry #1\nDate: 2024-05-02 21:07\nMood: Anxious\nSentiment Score: -0.60\n",
		"AI Comfort: Your feelings matter.\nAI Suggestions:\n  1. Break study into chunks\n  2. Sleep early\n  3. Eat well\n",
		"Entry #2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"CSV", CSV, false},
		{"text", Text, false},
		{" txt ", Text, false},
		{"pdf", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tc.in, got, err)
		}
	}

	now := time.Date(2024, 12, 9, 23, 0, 0, 0, time.UTC)
	if got := Filename(CSV, now); got != "drmind_entries_20241209.csv" {
		t.Errorf("Filename = %q", got)
	}
	if err := Write(&bytes.Buffer{}, Format("pdf"), nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

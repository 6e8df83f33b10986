package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrwolf/drmind/internal/models"
)

// Format is an export file type
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	Text Format = "txt"
)

// ParseFormat accepts json, csv, txt and text
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "txt", "text":
		return Text, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType is the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case Text:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Filename is the attachment name for an export taken at now
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("drmind_entries_%s.%s", now.Format("20060102"), f)
}

// Write renders entries in the given format. Entries are written in the
// order given, which callers keep newest first.
func Write(w io.Writer, f Format, entries []models.JournalEntry) error {
	switch f {
	case JSON:
		return WriteJSON(w, entries)
	case CSV:
		return WriteCSV(w, entries)
	case Text:
		return WriteText(w, entries)
	}
	return fmt.Errorf("unknown export format %q", f)
}

type record struct {
	Date        string   `json:"date"`
	Mood        string   `json:"mood"`
	Journal     string   `json:"journal"`
	Sentiment   float64  `json:"sentiment"`
	Comfort     string   `json:"comfort_message"`
	Suggestions []string `json:"suggestions"`
}

// WriteJSON writes an indented JSON array
func WriteJSON(w io.Writer, entries []models.JournalEntry) error {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		suggestions := e.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		records = append(records, record{
			Date:        e.CreatedAt.Format(time.RFC3339),
			Mood:        e.Mood,
			Journal:     e.Journal,
			Sentiment:   e.Sentiment,
			Comfort:     e.Comfort,
			Suggestions: suggestions,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return nil
}

var csvHeader = []string{"Date", "Time", "Mood", "Journal", "Sentiment", "Comfort Message", "Suggestions"}

// WriteCSV writes one row per entry with suggestions joined by "; "
func WriteCSV(w io.Writer, entries []models.JournalEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			e.CreatedAt.Format("2006-01-02"),
			e.CreatedAt.Format("15:04"),
			e.Mood,
			flatten(e.Journal),
			fmt.Sprintf("%.2f", e.Sentiment),
			flatten(e.Comfort),
			flatten(strings.Join(e.Suggestions, "; ")),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes a numbered, human readable report
func WriteText(w io.Writer, entries []models.JournalEntry) error {
	var b strings.Builder
	b.WriteString("🧠 Dr. Mind - Mood Journal Entries\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, e := range entries {
		fmt.Fprintf(&b, "Entry #%d\n", i+1)
		fmt.Fprintf(&b, "Date: %s\n", e.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "Mood: %s\n", e.Mood)
		fmt.Fprintf(&b, "Sentiment Score: %.2f\n", e.Sentiment)
		fmt.Fprintf(&b, "Journal: %s\n", e.Journal)
		fmt.Fprintf(&b, "AI Comfort: %s\n", e.Comfort)
		b.WriteString("AI Suggestions:\n")
		for j, s := range e.Suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", j+1, s)
		}
		b.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

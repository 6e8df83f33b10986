// Package signals pulls recurring words and the mood direction out of a
// run of journal entries. It has no storage of its own; callers pass the
// entries they already loaded.
package signals

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mrwolf/drmind/internal/models"
)

var wordRegex = regexp.MustCompile(`[a-zA-Z]+`)

// minTermLength drops fragments such as the "t" of "can't"
const minTermLength = 3

// TermCount is a word and how many entries used it
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// ExtractTerms returns up to maxTerms non-stopword terms from text, most
// frequent first
func ExtractTerms(text string, maxTerms int) []string {
	counts := make(map[string]int)
	for _, word := range words(text) {
		counts[word]++
	}
	ranked := rank(counts, maxTerms)
	out := make([]string, len(ranked))
	for i, tc := range ranked {
		out[i] = tc.Term
	}
	return out
}

// TopTerms counts, for each term, the number of entries whose journal uses
// it. A word repeated inside one entry counts once, so one long rant does
// not dominate the result.
func TopTerms(entries []models.JournalEntry, n int) []TermCount {
	counts := make(map[string]int)
	for _, e := range entries {
		seen := make(map[string]bool)
		for _, word := range words(e.Journal) {
			if seen[word] {
				continue
			}
			seen[word] = true
			counts[word]++
		}
	}
	return rank(counts, n)
}

func words(text string) []string {
	var out []string
	for _, w := range wordRegex.FindAllString(strings.ToLower(text), -1) {
		if len(w) < minTermLength || IsStopword(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// rank sorts by count descending with ties broken alphabetically
func rank(counts map[string]int, n int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if n >= 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

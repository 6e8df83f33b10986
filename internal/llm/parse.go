package llm

import (
	"fmt"
	"strings"

	"github.com/mrwolf/drmind/internal/models"
)

// genericSuggestions fill in when a free endpoint answers without a bullet list
var genericSuggestions = []string{
	"Take a moment to breathe deeply and center yourself",
	"Write down your thoughts to help process them",
	"Reach out to someone you trust for support",
}

// ParseLoose extracts a result from conversational output. The last line
// mentioning "comfort" or "feel" becomes the comfort message; lines led by
// "-" or "•" become suggestions.
func ParseLoose(text string) models.ResponseResult {
	var res models.ResponseResult
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "comfort") || strings.Contains(lower, "feel"):
			res.Comfort = line
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			if s := strings.TrimSpace(strings.TrimLeft(line, "-• ")); s != "" {
				res.Suggestions = append(res.Suggestions, s)
			}
		}
	}
	res.Suggestions = truncate(res.Suggestions)
	return res
}

// ParseStructured extracts a result from the COMFORT:/SUGGESTIONS: layout
func ParseStructured(text string) models.ResponseResult {
	var res models.ResponseResult
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "COMFORT:"):
			res.Comfort = strings.TrimSpace(strings.TrimPrefix(line, "COMFORT:"))
		case strings.HasPrefix(line, "-"):
			if s := strings.TrimSpace(strings.TrimLeft(line, "- ")); s != "" {
				res.Suggestions = append(res.Suggestions, s)
			}
		}
	}
	res.Suggestions = truncate(res.Suggestions)
	return res
}

// rescue fills whichever half of a loose parse came back empty
func rescue(res models.ResponseResult, mood string) models.ResponseResult {
	if strings.TrimSpace(res.Comfort) == "" {
		res.Comfort = fmt.Sprintf("I understand you're feeling %s. Your feelings are valid and important.", strings.ToLower(mood))
	}
	if len(res.Suggestions) == 0 {
		res.Suggestions = append([]string(nil), genericSuggestions...)
	}
	return res
}

func truncate(s []string) []string {
	if len(s) > models.SuggestionCount {
		return s[:models.SuggestionCount]
	}
	return s
}

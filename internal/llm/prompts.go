package llm

import (
	"fmt"
	"strings"

	"github.com/mrwolf/drmind/internal/models"
)

var polarityInstruction = map[models.Polarity]string{
	models.PolarityNegative: "User seems to be struggling. Provide comfort and practical suggestions.",
	models.PolarityPositive: "User is in a positive mood. Provide encouragement and suggestions to maintain this energy.",
	models.PolarityNeutral:  "User is in a neutral state. Provide gentle support and suggestions.",
}

var topicInstruction = map[models.Topic]string{
	models.TopicStudy:        "User is dealing with academic stress. Provide study-specific advice.",
	models.TopicCreative:     "User is starting a creative or building project. Provide project-specific advice.",
	models.TopicWork:         "User is dealing with work/project stress. Provide work-specific advice.",
	models.TopicRelationship: "User is dealing with relationship issues. Provide relationship-specific advice.",
}

// BuildPrompt renders the conversational prompt used by the free endpoints
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User is feeling %s and wrote: '%s'. Sentiment score: %.2f. ",
		strings.ToLower(req.Mood), req.Journal, req.Sentiment)

	pol, ok := polarityInstruction[req.Classification.Polarity]
	if !ok {
		pol = polarityInstruction[models.PolarityNeutral]
	}
	b.WriteString(pol)

	if topic, ok := topicInstruction[req.Classification.Topic]; ok {
		b.WriteString(" ")
		b.WriteString(topic)
	}

	return fmt.Sprintf("Dr. Mind: I'm here to help. %s Please provide a warm, empathetic response with practical suggestions.", b.String())
}

const structuredPrompt = `You are Dr. Mind, a compassionate AI mental health companion. The user wrote: "%s" and selected the mood: "%s" with a sentiment score of %.2f.

Please provide:
1. A warm, empathetic comfort message (2-3 sentences)
2. Three actionable, practical suggestions for what to do next

IMPORTANT: If the user mentions studying, exams, work, or academic stress, provide specific study/work advice. If they mention relationship issues, provide relationship advice. If they mention health concerns, provide health advice. Be specific and contextual to their situation.
%s
Format your response exactly like this:
COMFORT: [your comfort message here]
SUGGESTIONS:
- [suggestion 1]
- [suggestion 2]
- [suggestion 3]

Keep the tone warm, supportive, and actionable. Focus on practical steps they can take.`

// BuildStructuredPrompt renders the prompt asking for the COMFORT:/SUGGESTIONS: layout
func BuildStructuredPrompt(req Request) string {
	var context string
	if pol, ok := polarityInstruction[req.Classification.Polarity]; ok {
		context = pol
	}
	if topic, ok := topicInstruction[req.Classification.Topic]; ok {
		context += " " + topic
	}
	context = strings.TrimSpace(context)
	if context != "" {
		context = "Context: " + context + "\n"
	}
	return fmt.Sprintf(structuredPrompt, req.Journal, req.Mood, req.Sentiment, context)
}

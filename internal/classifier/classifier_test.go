package classifier

import (
	"testing"

	"github.com/mrwolf/drmind/internal/models"
)

func TestDetectTopic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Topic
	}{
		{"study", "Revising for my EXAM all night", models.TopicStudy},
		{"work", "My boss moved the meeting again", models.TopicWork},
		{"relationship", "Had an argument with my friend", models.TopicRelationship},
		{"creative", "I want to paint something this weekend", models.TopicCreative},
		{"none", "Quiet evening, nothing much", models.TopicNone},
		{"study beats work", "exam tomorrow and a deadline on Friday", models.TopicStudy},
		{"study beats relationship", "studying with a friend", models.TopicStudy},
		{"work beats creative", "trying to build my first app", models.TopicWork},
		{"creative beats relationship", "drawing with my family", models.TopicCreative},
		{"work beats relationship", "my colleague is also my friend", models.TopicWork},
		{"substring match", "the latest news", models.TopicStudy},
		{"art inside partner", "Had an argument with my partner", models.TopicCreative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectTopic(tt.text)
			if got != tt.want {
				t.Errorf("DetectTopic(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPolarityOf(t *testing.T) {
	tests := []struct {
		mood      string
		sentiment float64
		want      models.Polarity
	}{
		{"Neutral", 0.5, models.PolarityPositive},
		{"Neutral", -0.5, models.PolarityNegative},
		{"Neutral", 0.0, models.PolarityNeutral},
		{"Neutral", 0.3, models.PolarityNeutral},
		{"Neutral", -0.3, models.PolarityNeutral},
		{"Grateful", 0.0, models.PolarityPositive},
		{"Anxious", 0.1, models.PolarityNegative},
		{"Worried", 0.0, models.PolarityNeutral},
		{"Joyful", -0.8, models.PolarityPositive}, // positive check runs first
		{"Sad", 0.9, models.PolarityPositive},
	}

	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			got := PolarityOf(tt.mood, tt.sentiment)
			if got != tt.want {
				t.Errorf("PolarityOf(%q, %.2f) = %q, want %q", tt.mood, tt.sentiment, got, tt.want)
			}
		})
	}
}

func TestClassifyEmptyJournal(t *testing.T) {
	for _, journal := range []string{"", "   ", "\n\t"} {
		got := Classify(journal, "Joyful", 0.9)
		want := models.Classification{Topic: models.TopicNone, Polarity: models.PolarityNeutral}
		if got != want {
			t.Errorf("Classify(%q) = %+v, want %+v", journal, got, want)
		}
	}
}

func TestClassifyExamScenario(t *testing.T) {
	got := Classify("I have a huge exam tomorrow and I can't stop worrying", "Anxious", -0.6)
	if got.Topic != models.TopicStudy {
		t.Errorf("Topic = %q, want study", got.Topic)
	}
	if got.Polarity != models.PolarityNegative {
		t.Errorf("Polarity = %q, want negative", got.Polarity)
	}
}

func TestClassifyCreativeFlag(t *testing.T) {
	tests := []struct {
		name         string
		journal      string
		wantTopic    models.Topic
		wantCreative bool
	}{
		{"work and creative", "I need to build an app before the deadline", models.TopicWork, true},
		{"work only", "My boss moved the meeting again", models.TopicWork, false},
		{"creative only", "I want to paint something this weekend", models.TopicCreative, true},
		{"study keeps the flag", "I want to design a study plan", models.TopicStudy, true},
		{"none", "Quiet evening, nothing much", models.TopicNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.journal, "Stressed", -0.5)
			if got.Topic != tt.wantTopic {
				t.Errorf("Topic = %q, want %q", got.Topic, tt.wantTopic)
			}
			if got.Creative != tt.wantCreative {
				t.Errorf("Creative = %v, want %v", got.Creative, tt.wantCreative)
			}
		})
	}
}

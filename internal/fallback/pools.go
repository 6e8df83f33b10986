package fallback

import "github.com/mrwolf/drmind/internal/models"

var comfortMessages = map[models.Polarity][]string{
	models.PolarityPositive: {
		"It's wonderful to see you in such a positive space! Your energy is contagious and inspiring.",
		"Your positive outlook is truly beautiful. This kind of energy can create amazing ripples in your life.",
		"What a joy to witness your happiness! These moments of positivity are precious and worth celebrating.",
		"Your enthusiasm and joy are absolutely radiant. Keep shining this beautiful light!",
		"This positive energy you're experiencing is a testament to your inner strength and resilience.",
	},
	models.PolarityNeutral: {
		"It's perfectly okay to feel neutral. Every emotion has its place in our journey.",
		"Neutral moments are often when we can best observe and understand ourselves.",
		"There's wisdom in accepting all our emotional states, including the calm neutral ones.",
		"Sometimes neutrality is exactly what we need to process and reflect.",
		"Your neutral state might be your mind's way of finding balance and equilibrium.",
	},
	models.PolarityNegative: {
		"I hear you, and your feelings are completely valid. It's okay to not be okay.",
		"Your emotions are real and important. You don't have to rush through this difficult time.",
		"It takes courage to acknowledge when we're struggling. You're showing strength by being honest.",
		"Your feelings matter, and it's completely normal to have difficult days.",
		"Remember that this moment is temporary, and you have the strength to get through it.",
	},
}

var generalSuggestions = map[models.Polarity][]string{
	models.PolarityPositive: {
		"Share this positive energy with someone who might need it",
		"Document this feeling to remember it during tougher times",
		"Use this momentum to tackle something you've been putting off",
		"Express gratitude for this moment of joy",
		"Channel this energy into creative expression",
		"Plan something fun to look forward to",
		"Reach out to someone you care about",
		"Take a moment to appreciate how far you've come",
	},
	models.PolarityNeutral: {
		"Take a moment to practice mindfulness or meditation",
		"Try a new activity to add some variety to your day",
		"Connect with a friend or family member",
		"Go for a gentle walk and observe your surroundings",
		"Try something creative like drawing or writing",
		"Listen to music that matches your current mood",
		"Take some time for self-reflection",
		"Do something kind for someone else",
	},
	models.PolarityNegative: {
		"Practice self-compassion - be as kind to yourself as you would be to a friend",
		"Try some gentle physical activity like walking or stretching",
		"Consider talking to someone you trust about how you're feeling",
		"Allow yourself to feel this emotion without judgment",
		"Try listening to uplifting music or watching something funny",
		"Write down your feelings to help process them",
		"Take a warm bath or shower to help relax",
		"Remember that this feeling will pass",
	},
}

var topicSuggestions = map[models.Topic][]string{
	models.TopicStudy: {
		"Create a focused study schedule with 25-minute Pomodoro sessions",
		"Break down your exam material into smaller, manageable chunks",
		"Use active recall techniques like flashcards or practice questions",
		"Find a quiet study space and eliminate distractions",
		"Take regular breaks every 45 minutes to maintain focus",
		"Review your notes and create summary sheets for key topics",
		"Practice past exam questions to understand the format",
		"Get adequate sleep tonight - it's crucial for memory retention",
	},
	models.TopicCreative: {
		"Start with a simple project to build your confidence",
		"Break down your app idea into smaller, manageable features",
		"Use online tutorials and courses to learn step by step",
		"Join a coding community or forum for support and guidance",
		"Set realistic goals and celebrate small wins along the way",
		"Don't be afraid to start with basic tools and improve over time",
		"Find a mentor or friend who can help guide your learning",
		"Remember that every expert was once a beginner",
	},
	models.TopicWork: {
		"Prioritize your tasks using the Eisenhower Matrix (urgent vs important)",
		"Break down large projects into smaller, actionable steps",
		"Set specific time blocks for focused work sessions",
		"Communicate clearly with your team about deadlines and expectations",
		"Take short breaks to maintain productivity and reduce stress",
		"Document your progress to track your achievements",
		"Seek feedback early to avoid last-minute revisions",
		"Practice time management techniques like time blocking",
	},
	models.TopicRelationship: {
		"Practice active listening when talking with others",
		"Express your feelings openly and honestly",
		"Set healthy boundaries in your relationships",
		"Spend quality time with people who support you",
		"Consider couples therapy if you're in a romantic relationship",
		"Reach out to friends or family for support",
		"Practice empathy and try to see others' perspectives",
		"Take time for self-care to maintain healthy relationships",
	},
}

var moodSuggestions = map[string][]string{
	"Joyful": {
		"Channel this joy into creative expression",
		"Plan something fun to look forward to",
	},
	"Sad": {
		"Allow yourself to feel this emotion without judgment",
		"Try listening to uplifting music or watching something funny",
	},
	"Anxious": {
		"Practice deep breathing exercises",
		"Write down your worries to help organize your thoughts",
	},
	"Stressed": {
		"Take a short break to do something you enjoy",
		"Break down overwhelming tasks into smaller steps",
	},
	"Angry": {
		"Try physical exercise to release tension",
		"Write down your feelings before responding to situations",
	},
	"Exhausted": {
		"Prioritize rest and self-care today",
		"Be gentle with yourself and don't push too hard",
	},
	"Confused": {
		"Take time to reflect on what's causing uncertainty",
		"Talk through your thoughts with someone you trust",
	},
	"Worried": {
		"Practice grounding techniques to stay present",
		"Focus on what you can control right now",
	},
	"Grateful": {
		"Express your gratitude to someone who has helped you",
		"Write down three things you're thankful for today",
	},
	"Loved": {
		"Share this feeling of love with others",
		"Take time to appreciate the relationships in your life",
	},
}

var topicSuffix = map[models.Topic]string{
	models.TopicStudy:        " Academic challenges can be overwhelming, but you're building important skills.",
	models.TopicWork:         " Work stress is real, and it's okay to feel this way.",
	models.TopicCreative:     " Starting something new can feel overwhelming, but every journey begins with a single step.",
	models.TopicRelationship: " Relationships can be complex, and your feelings matter.",
}

// GenericSuggestions are used when nothing better is available
var GenericSuggestions = []string{
	"Take a moment to breathe deeply and center yourself",
	"Write down your thoughts to help process them",
	"Reach out to someone you trust for support",
}

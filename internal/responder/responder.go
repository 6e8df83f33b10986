package responder

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/classifier"
	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/llm"
	"github.com/mrwolf/drmind/internal/models"
)

// State is a step of the provider chain
type State int

// States in the order they are visited
const (
	TryA State = iota
	TryB
	TryC
	Fallback
	Done
)

func (s State) String() string {
	switch s {
	case TryA:
		return "try_a"
	case TryB:
		return "try_b"
	case TryC:
		return "try_c"
	case Fallback:
		return "fallback"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// next is the whole transition table: every TRY state moves on when its
// provider fails, and FALLBACK always finishes.
var next = map[State]State{
	TryA:     TryB,
	TryB:     TryC,
	TryC:     Fallback,
	Fallback: Done,
}

// Result is the normalised response plus the state that produced it
type Result struct {
	models.ResponseResult
	Source State
}

// Orchestrator tries providers in fixed priority order and backs them with
// the rule engine
type Orchestrator struct {
	providers map[State]llm.Provider
	engine    *fallback.Engine
}

// New creates an orchestrator. a, b and c may be nil; a nil provider is a
// failed attempt.
func New(a, b, c llm.Provider, engine *fallback.Engine) *Orchestrator {
	if engine == nil {
		engine = fallback.NewEngine(nil)
	}
	return &Orchestrator{
		providers: map[State]llm.Provider{TryA: a, TryB: b, TryC: c},
		engine:    engine,
	}
}

// GenerateResponse always returns a comfort message and exactly three suggestions
func (o *Orchestrator) GenerateResponse(ctx context.Context, mood, journal string, sentiment float64) models.ResponseResult {
	return o.Run(ctx, mood, journal, sentiment).ResponseResult
}

// Run walks the state machine and reports which state served the response
func (o *Orchestrator) Run(ctx context.Context, mood, journal string, sentiment float64) Result {
	cls := classifier.Classify(journal, mood, sentiment)
	req := llm.Request{Mood: mood, Journal: journal, Sentiment: sentiment, Classification: cls}

	state := TryA
	var res models.ResponseResult
	var source State
	for state != Done {
		if state == Fallback {
			log.Info().Str("topic", string(cls.Topic)).Str("polarity", string(cls.Polarity)).Msg("Using rule-based fallback")
			res = o.engine.Respond(mood, journal, sentiment, cls)
			source = Fallback
			state = next[state]
			continue
		}

		if got, ok := o.attempt(ctx, state, req); ok {
			res = got
			source = state
			break
		}
		state = next[state]
	}

	return Result{ResponseResult: o.normalise(res, mood, cls), Source: source}
}

func (o *Orchestrator) attempt(ctx context.Context, state State, req llm.Request) (models.ResponseResult, bool) {
	p := o.providers[state]
	if p == nil {
		return models.ResponseResult{}, false
	}

	res, err := p.Generate(ctx, req)
	if err != nil {
		log.Info().Err(err).Str("provider", p.Name()).Str("state", state.String()).Msg("Provider unavailable, moving on")
		return models.ResponseResult{}, false
	}
	if !res.Valid() {
		log.Info().Str("provider", p.Name()).Str("state", state.String()).Msg("Provider result incomplete, moving on")
		return models.ResponseResult{}, false
	}
	return res, true
}

// normalise trims, drops blanks and pads to exactly three suggestions
func (o *Orchestrator) normalise(res models.ResponseResult, mood string, cls models.Classification) models.ResponseResult {
	out := models.ResponseResult{Comfort: strings.TrimSpace(res.Comfort)}
	if out.Comfort == "" {
		out.Comfort = o.engine.Comfort(cls)
	}

	seen := make(map[string]bool)
	add := func(items []string) {
		for _, s := range items {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] || len(out.Suggestions) == models.SuggestionCount {
				continue
			}
			seen[s] = true
			out.Suggestions = append(out.Suggestions, s)
		}
	}

	add(res.Suggestions)
	if len(out.Suggestions) < models.SuggestionCount {
		add(o.engine.Suggestions(mood, cls))
	}
	if len(out.Suggestions) < models.SuggestionCount {
		add(fallback.GenericSuggestions)
	}
	return out
}

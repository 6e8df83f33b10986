package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/mrwolf/drmind/internal/models"
)

// DefaultGeminiModel is the hosted large model used for structured replies
const DefaultGeminiModel = "gemini-1.5-pro"

// textGenerator is the slice of the Gemini SDK the adapter needs
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Check(ctx context.Context) error
	Close() error
}

// Gemini wraps the Google Gemini API. It asks for the structured
// COMFORT:/SUGGESTIONS: layout and does not rescue incomplete replies.
type Gemini struct {
	settings Settings
	gen      textGenerator
}

// NewGemini creates the hosted-model adapter. Without a credential the
// adapter is built but every call fails fast with ErrNoCredential.
func NewGemini(ctx context.Context, s Settings) (*Gemini, error) {
	if s.Model == "" {
		s.Model = DefaultGeminiModel
	}
	g := &Gemini{settings: s}
	if s.Credential == "" {
		return g, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(s.Credential)}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	model := client.GenerativeModel(s.Model)
	model.SetTemperature(0.7)
	g.gen = &sdkGenerator{client: client, model: model}
	return g, nil
}

// Name implements Provider
func (g *Gemini) Name() string { return "gemini" }

// Generate implements Provider
func (g *Gemini) Generate(ctx context.Context, req Request) (models.ResponseResult, error) {
	if g.gen == nil {
		return models.ResponseResult{}, ErrNoCredential
	}
	log.Info().Str("provider", g.Name()).Str("model", g.settings.Model).Msg("Trying provider")

	ctx, cancel := context.WithTimeout(ctx, g.settings.timeout())
	defer cancel()

	text, err := g.gen.GenerateText(ctx, BuildStructuredPrompt(req))
	if err != nil {
		log.Warn().Err(err).Str("provider", g.Name()).Msg("Provider failed")
		return models.ResponseResult{}, fmt.Errorf("gemini: %w: %v", ErrTransport, err)
	}

	res := ParseStructured(text)
	if strings.TrimSpace(res.Comfort) == "" || len(res.Suggestions) == 0 {
		log.Warn().Str("provider", g.Name()).Msg("Provider reply incomplete")
		return models.ResponseResult{}, fmt.Errorf("gemini: %w", ErrParseIncomplete)
	}
	return res, nil
}

// Check implements Checker
func (g *Gemini) Check(ctx context.Context) error {
	if g.gen == nil {
		return ErrNoCredential
	}
	ctx, cancel := context.WithTimeout(ctx, g.settings.timeout())
	defer cancel()
	if err := g.gen.Check(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// Close releases the SDK client
func (g *Gemini) Close() error {
	if g.gen == nil {
		return nil
	}
	return g.gen.Close()
}

type sdkGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func (s *sdkGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		break
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return b.String(), nil
}

func (s *sdkGenerator) Check(ctx context.Context) error {
	_, err := s.model.Info(ctx)
	return err
}

func (s *sdkGenerator) Close() error {
	return s.client.Close()
}

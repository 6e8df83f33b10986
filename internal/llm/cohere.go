package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/models"
)

// DefaultCohereEndpoint is the free-tier generation endpoint (5 requests/minute)
const DefaultCohereEndpoint = "https://api.cohere.ai/v1/generate"

// DefaultCohereModel is sent when no model is configured
const DefaultCohereModel = "command"

// Cohere wraps the Cohere generate API
type Cohere struct {
	settings   Settings
	httpClient *http.Client
}

// NewCohere creates the free-tier generation adapter
func NewCohere(s Settings) *Cohere {
	if s.Endpoint == "" {
		s.Endpoint = DefaultCohereEndpoint
	}
	if s.Model == "" {
		s.Model = DefaultCohereModel
	}
	return &Cohere{
		settings:   s,
		httpClient: &http.Client{Timeout: s.timeout()},
	}
}

type cohereRequest struct {
	Model             string   `json:"model"`
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float64  `json:"temperature"`
	K                 int      `json:"k"`
	StopSequences     []string `json:"stop_sequences"`
	ReturnLikelihoods string   `json:"return_likelihoods"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

// Name implements Provider
func (c *Cohere) Name() string { return "cohere" }

// Generate implements Provider
func (c *Cohere) Generate(ctx context.Context, req Request) (models.ResponseResult, error) {
	if c.settings.Credential == "" {
		return models.ResponseResult{}, ErrNoCredential
	}
	log.Info().Str("provider", c.Name()).Msg("Trying provider")

	body := cohereRequest{
		Model:             c.settings.Model,
		Prompt:            BuildPrompt(req),
		MaxTokens:         200,
		Temperature:       0.7,
		StopSequences:     []string{},
		ReturnLikelihoods: "NONE",
	}

	var out cohereResponse
	if err := postJSON(ctx, c.httpClient, c.settings.Endpoint, c.settings.Credential, body, &out); err != nil {
		log.Warn().Err(err).Str("provider", c.Name()).Msg("Provider failed")
		return models.ResponseResult{}, fmt.Errorf("cohere: %w", err)
	}
	if len(out.Generations) == 0 || strings.TrimSpace(out.Generations[0].Text) == "" {
		log.Warn().Str("provider", c.Name()).Msg("Provider returned no text")
		return models.ResponseResult{}, fmt.Errorf("cohere: %w: no generations", ErrMalformedReply)
	}

	return rescue(ParseLoose(out.Generations[0].Text), req.Mood), nil
}

// Check implements Checker
func (c *Cohere) Check(ctx context.Context) error {
	if c.settings.Credential == "" {
		return ErrNoCredential
	}
	return probe(ctx, c.httpClient, c.settings.Endpoint, c.settings.Credential)
}

package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/models"
)

// DefaultHuggingFaceEndpoint is the free inference endpoint
const DefaultHuggingFaceEndpoint = "https://api-inference.huggingface.co/models/microsoft/DialoGPT-medium"

// HuggingFace wraps the Hugging Face inference API
type HuggingFace struct {
	settings   Settings
	httpClient *http.Client
}

// NewHuggingFace creates the free inference adapter
func NewHuggingFace(s Settings) *HuggingFace {
	if s.Endpoint == "" {
		s.Endpoint = DefaultHuggingFaceEndpoint
	}
	return &HuggingFace{
		settings:   s,
		httpClient: &http.Client{Timeout: s.timeout()},
	}
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Name implements Provider
func (h *HuggingFace) Name() string { return "huggingface" }

// Generate implements Provider
func (h *HuggingFace) Generate(ctx context.Context, req Request) (models.ResponseResult, error) {
	if h.settings.Credential == "" {
		return models.ResponseResult{}, ErrNoCredential
	}
	log.Info().Str("provider", h.Name()).Msg("Trying provider")

	var out []hfGeneration
	if err := postJSON(ctx, h.httpClient, h.settings.Endpoint, h.settings.Credential, hfRequest{Inputs: BuildPrompt(req)}, &out); err != nil {
		log.Warn().Err(err).Str("provider", h.Name()).Msg("Provider failed")
		return models.ResponseResult{}, fmt.Errorf("huggingface: %w", err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		log.Warn().Str("provider", h.Name()).Msg("Provider returned no text")
		return models.ResponseResult{}, fmt.Errorf("huggingface: %w: no generated text", ErrMalformedReply)
	}

	return rescue(ParseLoose(out[0].GeneratedText), req.Mood), nil
}

// Check implements Checker
func (h *HuggingFace) Check(ctx context.Context) error {
	if h.settings.Credential == "" {
		return ErrNoCredential
	}
	return probe(ctx, h.httpClient, h.settings.Endpoint, h.settings.Credential)
}

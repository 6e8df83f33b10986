package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/config"
	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/llm"
	"github.com/mrwolf/drmind/internal/logging"
	"github.com/mrwolf/drmind/internal/responder"
)

// setup loads configuration and configures the global logger
func setup() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return cfg, nil
}

// backends holds the three providers in priority order
type backends struct {
	huggingface *llm.HuggingFace
	cohere      *llm.Cohere
	gemini      *llm.Gemini
}

func newBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	gemini, err := llm.NewGemini(ctx, cfg.Providers.Gemini.Settings())
	if err != nil {
		return nil, err
	}
	b := &backends{
		huggingface: llm.NewHuggingFace(cfg.Providers.HuggingFace.Settings()),
		cohere:      llm.NewCohere(cfg.Providers.Cohere.Settings()),
		gemini:      gemini,
	}

	for name, p := range map[string]config.Provider{
		"huggingface": cfg.Providers.HuggingFace,
		"cohere":      cfg.Providers.Cohere,
		"gemini":      cfg.Providers.Gemini,
	} {
		if p.Credential == "" {
			log.Warn().Str("provider", name).Msg("No credential configured, provider will be skipped")
		}
	}
	return b, nil
}

func (b *backends) orchestrator(src fallback.Source) *responder.Orchestrator {
	return responder.New(b.huggingface, b.cohere, b.gemini, fallback.NewEngine(src))
}

func (b *backends) checkers() map[string]llm.Checker {
	return map[string]llm.Checker{
		b.huggingface.Name(): b.huggingface,
		b.cohere.Name():      b.cohere,
		b.gemini.Name():      b.gemini,
	}
}

func (b *backends) names() []string {
	return []string{b.huggingface.Name(), b.cohere.Name(), b.gemini.Name()}
}

func (b *backends) Close() error {
	if err := b.gemini.Close(); err != nil {
		return fmt.Errorf("closing gemini client: %w", err)
	}
	return nil
}

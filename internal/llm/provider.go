package llm

import (
	"context"
	"errors"
	"time"

	"github.com/mrwolf/drmind/internal/models"
)

// Failure kinds. Adapters wrap one of these so callers can use errors.Is.
var (
	ErrNoCredential    = errors.New("provider credential not configured")
	ErrTransport       = errors.New("provider transport failure")
	ErrStatus          = errors.New("provider returned non-success status")
	ErrMalformedReply  = errors.New("provider reply malformed")
	ErrParseIncomplete = errors.New("provider reply missing comfort or suggestions")
)

// DefaultTimeout bounds a single provider call when none is configured
const DefaultTimeout = 8 * time.Second

// Request is everything an adapter needs to build its prompt
type Request struct {
	Mood           string
	Journal        string
	Sentiment      float64
	Classification models.Classification
}

// Provider is one text-generation backend. Generate makes a single attempt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (models.ResponseResult, error)
}

// Checker is implemented by providers that can report reachability
type Checker interface {
	Check(ctx context.Context) error
}

// Settings configure one adapter
type Settings struct {
	Endpoint   string
	Credential string
	Model      string
	Timeout    time.Duration
}

func (s Settings) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jparta/onetoone/internal/models"
)

// Provider defines the interface for translation providers
type Provider interface {
	// Translate returns the ranked translations of word and a lazy stream of
	// example sentences whose Text is in sourceLang.
	Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error)

	// Name returns the provider name
	Name() string
}

// Result is the answer to a single translation query.
type Result struct {
	Translations []models.Candidate
	Examples     models.SentenceStream
}

// Error is returned for any failed or malformed provider response.
type Error struct {
	Provider   string
	Word       string
	StatusCode int // HTTP status, 0 when not applicable
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: query %q: status %d: %v", e.Provider, e.Word, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: query %q: %v", e.Provider, e.Word, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config holds common configuration for translation providers
type Config struct {
	Provider string        // "reverso", "openai" or "gemini"
	Timeout  time.Duration // per-request timeout for HTTP clients
	Logger   *slog.Logger

	// Reverso settings
	ReversoURL string // base URL, defaults to the public service

	// OpenAI settings
	OpenAIKey   string
	OpenAIModel string
	OpenAIURL   string // optional base URL override

	// Gemini settings
	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    "reverso",
		Timeout:     30 * time.Second,
		ReversoURL:  DefaultReversoURL,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}

// NewProvider creates the appropriate provider based on configuration
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "reverso", "":
		return NewReversoProvider(config), nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		gemini, err := NewGeminiProvider(ctx, config)
		if err != nil {
			return nil, err
		}
		return gemini, nil

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	log      *slog.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		log:      logger,
	}
}

// Translate tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error) {
	result, err := p.primary.Translate(ctx, word, sourceLang, targetLang)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.log.WarnContext(ctx, "primary provider failed, falling back",
		slog.String("primary", p.primary.Name()),
		slog.String("fallback", p.fallback.Name()),
		slog.String("word", word),
		slog.String("error", err.Error()),
	)
	return p.fallback.Translate(ctx, word, sourceLang, targetLang)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

package provider

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// GeminiProvider answers translation queries with a Gemini model.
type GeminiProvider struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// NewGeminiProvider creates a new Gemini translation provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		log:    logger.With("provider", "gemini"),
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Translate asks the model for translations and example sentences
func (p *GeminiProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(buildPrompt(word, sourceLang, targetLang)),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("Gemini API error: %w", err)}
	}

	result, err := parseAnswer(word, resp.Text())
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: err}
	}

	p.log.DebugContext(ctx, "gemini response",
		slog.String("word", word),
		slog.String("model", p.model),
		slog.Int("translations", len(result.Translations)),
	)
	return result, nil
}

package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider answers translation queries with a chat model.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIProvider creates a new OpenAI translation provider
func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIURL != "" {
		clientConfig.BaseURL = config.OpenAIURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	model := config.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		log:    logger.With("provider", "openai"),
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Translate asks the model for translations and example sentences
func (p *OpenAIProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(word, sourceLang, targetLang),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		perr := &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("OpenAI API error: %w", err)}
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		if errors.As(err, &apiErr) {
			perr.StatusCode = apiErr.HTTPStatusCode
		} else if errors.As(err, &reqErr) {
			perr.StatusCode = reqErr.HTTPStatusCode
		}
		return nil, perr
	}

	if len(resp.Choices) == 0 {
		return nil, &Error{Provider: p.Name(), Word: word, Err: fmt.Errorf("no choices returned")}
	}

	result, err := parseAnswer(word, resp.Choices[0].Message.Content)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Word: word, Err: err}
	}

	p.log.DebugContext(ctx, "openai response",
		slog.String("word", word),
		slog.String("model", p.model),
		slog.Int("translations", len(result.Translations)),
	)
	return result, nil
}

package provider

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister prints the chat models an OpenAI account can use as a provider.
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(config *Config) *Lister {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIURL != "" {
		clientConfig.BaseURL = config.OpenAIURL
	}
	return &Lister{
		apiKey: config.OpenAIKey,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// ListModels writes the available chat models to w, the recommended ones first
func (l *Lister) ListModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY or provider.openai_key in .onetoone.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	var recommended, other []string
	for _, model := range list.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"), strings.Contains(id, "audio"),
			strings.Contains(id, "dall-e"), strings.Contains(id, "embedding"),
			strings.Contains(id, "whisper"):
			continue
		case strings.HasPrefix(id, "gpt-4"):
			recommended = append(recommended, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat") || strings.HasPrefix(id, "o"):
			other = append(other, id)
		}
	}
	sort.Strings(recommended)
	sort.Strings(other)

	fmt.Fprintln(w, "Chat models usable with --provider openai:")
	if len(recommended)+len(other) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, id := range recommended {
		fmt.Fprintf(w, "  %s\n", id)
	}
	for _, id := range other {
		fmt.Fprintf(w, "  %s\n", id)
	}
	return nil
}

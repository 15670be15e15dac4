package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Token is one analyzed word.
type Token struct {
	Surface      string
	Lemma        string
	PartOfSpeech string
}

// Analyzer tokenizes and lemmatizes text in a given language.
type Analyzer interface {
	Analyze(ctx context.Context, text, lang string) ([]Token, error)
	Name() string
}

// Error wraps any analyzer failure.
type Error struct {
	Analyzer string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analyzer %s: %v", e.Analyzer, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config selects and configures an analyzer
type Config struct {
	Name    string // "udpipe", "kagome" or "simple"
	URL     string // UDPipe endpoint override
	Timeout time.Duration
}

// NewAnalyzer creates the analyzer named in config. Japanese always uses
// kagome since UDPipe's Japanese models do not lemmatize.
func NewAnalyzer(config Config, lang string) (Analyzer, error) {
	name := config.Name
	if lang == "ja" && (name == "" || name == "udpipe") {
		name = "kagome"
	}

	switch name {
	case "udpipe", "":
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return NewUDPipe(config.URL, &http.Client{Timeout: timeout}), nil
	case "kagome":
		return NewKagome()
	case "simple":
		return NewSimple(), nil
	default:
		return nil, fmt.Errorf("unknown analyzer: %s", name)
	}
}

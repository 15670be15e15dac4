package explorer

import (
	"fmt"

	"github.com/jparta/onetoone/internal/frontier"
)

// ErrEmptyFrontier is returned when no words are left to process while
// iterations remain.
var ErrEmptyFrontier = frontier.ErrEmptyFrontier

// ProviderError wraps a failed translation or example query.
type ProviderError struct {
	Op   string // "translate", "reverse" or "examples"
	Word string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s %q: %v", e.Op, e.Word, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AnalyzerError wraps a lexical analyzer failure.
type AnalyzerError struct {
	Word string
	Err  error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyze examples of %q: %v", e.Word, e.Err)
}

func (e *AnalyzerError) Unwrap() error { return e.Err }

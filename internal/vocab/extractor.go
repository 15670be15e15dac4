// Package vocab pulls candidate words out of example sentences.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jparta/onetoone/internal/analyzer"
	"github.com/jparta/onetoone/internal/models"
)

// DefaultMaxSentences bounds how many examples are analyzed per word.
const DefaultMaxSentences = 10

// Extractor lemmatizes example sentences with an Analyzer.
type Extractor struct {
	analyzer analyzer.Analyzer
}

// NewExtractor creates an extractor backed by a
func NewExtractor(a analyzer.Analyzer) *Extractor {
	return &Extractor{analyzer: a}
}

// Extract reads at most maxSentences sentences from stream, analyzes their
// concatenated text and returns the distinct lemmas that contain at least
// one letter, sorted. maxSentences <= 0 selects DefaultMaxSentences.
func (e *Extractor) Extract(ctx context.Context, stream models.SentenceStream, maxSentences int, lang string) ([]string, error) {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	var text strings.Builder
	for i := 0; i < maxSentences; i++ {
		sentence, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read examples: %w", err)
		}
		text.WriteString(sentence.Text)
	}
	if text.Len() == 0 {
		return nil, nil
	}

	tokens, err := e.analyzer.Analyze(ctx, text.String(), lang)
	if err != nil {
		return nil, err
	}

	lemmas := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		lemma := norm.NFC.String(tok.Lemma)
		if hasLetter(lemma) {
			lemmas[lemma] = struct{}{}
		}
	}

	out := make([]string, 0, len(lemmas))
	for l := range lemmas {
		out = append(out, l)
	}
	sort.Strings(out)
	return out, nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

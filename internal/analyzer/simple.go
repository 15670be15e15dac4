package analyzer

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Simple splits on anything that is not a letter or digit and lowercases
// the pieces. It does no real lemmatization.
type Simple struct {
	fold cases.Caser
}

// NewSimple creates the offline analyzer
func NewSimple() *Simple {
	return &Simple{fold: cases.Lower(language.Und)}
}

// Name returns the analyzer name
func (s *Simple) Name() string {
	return "simple"
}

// Analyze splits text into lowercased words
func (s *Simple) Analyze(ctx context.Context, text, lang string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Analyzer: s.Name(), Err: err}
	}

	fold := s.fold
	if tag, err := language.Parse(lang); err == nil {
		fold = cases.Lower(tag)
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r)
	})
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, Token{Surface: f, Lemma: fold.String(f)})
	}
	return tokens, nil
}

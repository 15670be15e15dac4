package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Kagome analyzes Japanese text with the IPA dictionary.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome creates a new tokenizer instance
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, &Error{Analyzer: "kagome", Err: fmt.Errorf("create tokenizer: %w", err)}
	}
	return &Kagome{t: t}, nil
}

// Name returns the analyzer name
func (k *Kagome) Name() string {
	return "kagome"
}

// Analyze tokenizes text. The lang argument is ignored.
func (k *Kagome) Analyze(ctx context.Context, text, lang string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Analyzer: k.Name(), Err: err}
	}

	var result []Token
	for _, token := range k.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 0 POS, 6 base form
		features := token.Features()
		lemma := token.Surface
		if len(features) > 6 && features[6] != "*" {
			lemma = features[6]
		}
		pos := ""
		if len(features) > 0 {
			pos = features[0]
		}

		result = append(result, Token{Surface: token.Surface, Lemma: lemma, PartOfSpeech: pos})
	}
	return result, nil
}

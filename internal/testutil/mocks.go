package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jparta/onetoone/internal/analyzer"
	"github.com/jparta/onetoone/internal/models"
	"github.com/jparta/onetoone/internal/provider"
)

// Entry is a canned provider answer.
type Entry struct {
	Translations []models.Candidate
	Examples     []string
}

// FakeProvider serves canned answers keyed by word and language pair.
// Unknown words get an empty answer.
type FakeProvider struct {
	mu      sync.Mutex
	entries map[string]Entry
	Errors  map[string]error
	Calls   []string
}

// NewFakeProvider creates an empty fake
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		entries: make(map[string]Entry),
		Errors:  make(map[string]error),
	}
}

func key(word, sourceLang, targetLang string) string {
	return fmt.Sprintf("%s|%s|%s", word, sourceLang, targetLang)
}

// Add registers the answer for word in the given direction
func (f *FakeProvider) Add(word, sourceLang, targetLang string, entry Entry) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key(word, sourceLang, targetLang)] = entry
	return f
}

// Fail makes every query for word in the given direction return err
func (f *FakeProvider) Fail(word, sourceLang, targetLang string, err error) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[key(word, sourceLang, targetLang)] = err
	return f
}

// Translate returns the registered answer
func (f *FakeProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (*provider.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, fmt.Sprintf("%s (%s->%s)", word, sourceLang, targetLang))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := key(word, sourceLang, targetLang)
	if err, ok := f.Errors[k]; ok {
		return nil, &provider.Error{Provider: f.Name(), Word: word, Err: err}
	}

	entry := f.entries[k]
	sentences := make([]models.Sentence, 0, len(entry.Examples))
	for _, text := range entry.Examples {
		sentences = append(sentences, models.Sentence{Text: text})
	}
	translations := make([]models.Candidate, len(entry.Translations))
	copy(translations, entry.Translations)
	for i := range translations {
		translations[i].SourceWord = word
	}
	return &provider.Result{
		Translations: translations,
		Examples:     models.NewSliceStream(sentences),
	}, nil
}

// Name returns the provider name
func (f *FakeProvider) Name() string {
	return "fake"
}

// CallCount returns the number of Translate calls so far
func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Candidate is shorthand for building a ranked translation
func Candidate(translation string, frequency int, partOfSpeech string) models.Candidate {
	return models.Candidate{Translation: translation, Frequency: frequency, PartOfSpeech: partOfSpeech}
}

// FakeAnalyzer splits text on whitespace and strips trailing punctuation.
// Lemmas can be overridden per surface form.
type FakeAnalyzer struct {
	Lemmas map[string]string
	Err    error
	Texts  []string
}

// Analyze records text and returns one token per field
func (f *FakeAnalyzer) Analyze(ctx context.Context, text, lang string) ([]analyzer.Token, error) {
	f.Texts = append(f.Texts, text)
	if f.Err != nil {
		return nil, &analyzer.Error{Analyzer: f.Name(), Err: f.Err}
	}

	var tokens []analyzer.Token
	for _, field := range strings.Fields(text) {
		surface := strings.TrimRight(field, ".,!?;:")
		if surface == "" {
			surface = field
		}
		lemma := surface
		if l, ok := f.Lemmas[surface]; ok {
			lemma = l
		}
		tokens = append(tokens, analyzer.Token{Surface: surface, Lemma: lemma})
	}
	return tokens, nil
}

// Name returns the analyzer name
func (f *FakeAnalyzer) Name() string {
	return "fake"
}

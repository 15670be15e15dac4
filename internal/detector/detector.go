// Package detector decides whether a word and its top translation are each
// other's most frequent translation.
package detector

import (
	"context"
	"fmt"

	"github.com/jparta/onetoone/internal/models"
	"github.com/jparta/onetoone/internal/pos"
	"github.com/jparta/onetoone/internal/provider"
)

// Observer receives the forward top candidate and the back-translations of
// every reverse query the detector issues.
type Observer func(top models.Candidate, back []models.Candidate)

// Detector runs the reverse check against a provider.
type Detector struct {
	provider provider.Provider
	equiv    *pos.Equivalence
	observe  Observer
}

// Option configures a Detector
type Option func(*Detector)

// WithEquivalence replaces the default part-of-speech classes.
func WithEquivalence(e *pos.Equivalence) Option {
	return func(d *Detector) { d.equiv = e }
}

// WithObserver registers a callback for diagnostic logging.
func WithObserver(o Observer) Option {
	return func(d *Detector) { d.observe = o }
}

// New creates a detector that issues reverse queries through p
func New(p provider.Provider, opts ...Option) *Detector {
	d := &Detector{provider: p, equiv: pos.Default}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect reports whether original and forward[0] form a one-to-one pair.
// It issues exactly one reverse query when forward is non-empty and none
// otherwise. A nil record with a nil error means no match.
func (d *Detector) Detect(ctx context.Context, original string, forward []models.Candidate, sourceLang, targetLang string) (*models.Record, error) {
	if len(forward) == 0 {
		return nil, nil
	}
	top := forward[0]

	result, err := d.provider.Translate(ctx, top.Translation, targetLang, sourceLang)
	if err != nil {
		return nil, fmt.Errorf("reverse query %q: %w", top.Translation, err)
	}
	back := result.Translations
	if d.observe != nil {
		d.observe(top, back)
	}
	if len(back) == 0 {
		return nil, nil
	}
	topBack := back[0]

	match := topBack.Translation == original
	if !match {
		filtered, ok := d.filteredTop(top.PartOfSpeech, back)
		match = ok && filtered == original
	}
	if match {
		return &models.Record{
			Word:        original,
			Frequency:   topBack.Frequency,
			Translation: top.Translation,
		}, nil
	}
	return nil, nil
}

// filteredTop returns the first back-translation whose tag is equivalent to tag.
func (d *Detector) filteredTop(tag string, back []models.Candidate) (string, bool) {
	for _, c := range back {
		if d.equiv.Equivalent(tag, c.PartOfSpeech) {
			return c.Translation, true
		}
	}
	return "", false
}

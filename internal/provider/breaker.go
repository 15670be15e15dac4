package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider stops calling a provider after repeated failures and
// fails fast until the breaker's cool-down has elapsed.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps p with a circuit breaker that opens after failures
// consecutive errors and half-opens again after cooldown.
func WithBreaker(p Provider, failures uint32, cooldown time.Duration, logger *slog.Logger) *BreakerProvider {
	if failures == 0 {
		failures = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// cancellation is not a provider failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("provider", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
	return &BreakerProvider{next: p, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

// Translate forwards to the wrapped provider unless the breaker is open
func (b *BreakerProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, word, sourceLang, targetLang)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &Error{Provider: b.Name(), Word: word, Err: fmt.Errorf("circuit breaker: %w", err)}
		}
		return nil, err
	}
	return out.(*Result), nil
}

// State reports the breaker state, mainly for logging and tests.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

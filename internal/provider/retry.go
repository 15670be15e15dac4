package provider

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryProvider retries transient provider failures with exponential backoff.
type RetryProvider struct {
	next       Provider
	maxRetries uint64
	newBackOff func() backoff.BackOff
	log        *slog.Logger
}

// WithRetry wraps p so that failed queries are retried up to maxRetries
// times. Client errors other than 429 are not retried.
func WithRetry(p Provider, maxRetries uint64, logger *slog.Logger) *RetryProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryProvider{
		next:       p,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = 2 * time.Minute
			return b
		},
		log: logger,
	}
}

// Name returns the wrapped provider name
func (r *RetryProvider) Name() string {
	return r.next.Name()
}

// Translate calls the wrapped provider, retrying on transient errors
func (r *RetryProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (*Result, error) {
	var result *Result
	op := func() error {
		res, err := r.next.Translate(ctx, word, sourceLang, targetLang)
		if err != nil {
			if ctx.Err() != nil || !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		r.log.WarnContext(ctx, "provider query failed, retrying",
			slog.String("provider", r.next.Name()),
			slog.String("word", word),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return result, nil
}

func retryable(err error) bool {
	var perr *Error
	if errors.As(err, &perr) && perr.StatusCode >= 400 && perr.StatusCode < 500 {
		return perr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

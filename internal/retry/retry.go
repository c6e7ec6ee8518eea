// Package retry wraps fallible remote-call invocations with bounded
// retries and exponential backoff. The policy decides nothing about what
// is retryable; the caller supplies a classifier.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kasparro/pagegen/internal/ctxlog"
)

// Classifier reports whether an error is transient and worth retrying.
// A false result stops retrying immediately.
type Classifier func(error) bool

// Policy holds the retry knobs for one call site.
type Policy struct {
	// MaxAttempts is the total number of invocations, including the first.
	MaxAttempts int
	// BaseDelay is the initial backoff interval.
	BaseDelay time.Duration
	// MaxDelay caps the backoff interval.
	MaxDelay time.Duration
}

// jitterFactor randomizes each delay by up to ±20% so concurrent nodes
// hitting the same endpoint don't retry in lockstep.
const jitterFactor = 0.2

// DefaultPolicy mirrors the service defaults: three attempts, one second
// base delay, ten second cap.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Outcome records how an invocation went, for diagnostics.
type Outcome struct {
	// Attempts is the number of invocations performed.
	Attempts int
	// Elapsed is the total wall-clock time including backoff sleeps.
	Elapsed time.Duration
}

// Do invokes fn under the policy. Transient errors (per classify) are
// retried with exponential backoff until MaxAttempts is exhausted; a fatal
// classification returns at once. The returned error is tagged with the
// attempt count. Context cancellation interrupts both the call and any
// backoff sleep.
func Do[T any](ctx context.Context, p Policy, classify Classifier, fn func(context.Context) (T, error)) (T, Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.BaseDelay
	bo.MaxInterval = p.MaxDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = jitterFactor
	bo.MaxElapsedTime = 0 // attempt count is the only stop condition

	var (
		result  T
		outcome Outcome
		start   = time.Now()
	)

	operation := func() error {
		outcome.Attempts++
		v, err := fn(ctx)
		if err == nil {
			result = v
			return nil
		}
		if !classify(err) {
			logger.Debug("Invocation failed with fatal error, not retrying.", "attempt", outcome.Attempts, "error", err)
			return backoff.Permanent(err)
		}
		logger.Warn("Invocation failed with transient error.", "attempt", outcome.Attempts, "max_attempts", p.MaxAttempts, "error", err)
		return err
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.MaxAttempts-1)), ctx)
	err := backoff.Retry(operation, wrapped)
	outcome.Elapsed = time.Since(start)

	if err != nil {
		var zero T
		return zero, outcome, fmt.Errorf("after %d attempt(s): %w", outcome.Attempts, err)
	}
	return result, outcome, nil
}

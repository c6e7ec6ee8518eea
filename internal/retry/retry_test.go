package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastPolicy keeps backoff sleeps negligible for tests.
func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func alwaysTransient(error) bool { return true }
func neverTransient(error) bool  { return false }

func TestDoSucceedsFirstAttempt(t *testing.T) {
	v, out, err := Do(context.Background(), fastPolicy(3), alwaysTransient, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, out.Attempts)
}

func TestDoRetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	v, out, err := Do(context.Background(), fastPolicy(5), alwaysTransient, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("flaky")
		}
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 3, out.Attempts)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsMaxAttempts(t *testing.T) {
	flaky := errors.New("still down")
	calls := 0
	_, out, err := Do(context.Background(), fastPolicy(3), alwaysTransient, func(ctx context.Context) (int, error) {
		calls++
		return 0, flaky
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, flaky)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, out.Attempts)
	assert.Contains(t, err.Error(), "after 3 attempt(s)")
}

func TestDoFatalErrorStopsImmediately(t *testing.T) {
	fatal := errors.New("bad request")
	calls := 0
	_, out, err := Do(context.Background(), fastPolicy(5), neverTransient, func(ctx context.Context) (int, error) {
		calls++
		return 0, fatal
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, out.Attempts)
}

func TestDoSingleAttemptPolicy(t *testing.T) {
	calls := 0
	_, out, err := Do(context.Background(), fastPolicy(1), alwaysTransient, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("nope")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, out.Attempts)
}

func TestDoZeroAttemptsNormalizedToOne(t *testing.T) {
	calls := 0
	v, out, err := Do(context.Background(), Policy{MaxAttempts: 0, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, alwaysTransient, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, out.Attempts)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxAttempts: 10, BaseDelay: 50 * time.Millisecond, MaxDelay: 100 * time.Millisecond}

	_, _, err := Do(ctx, p, alwaysTransient, func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			cancel()
		}
		return 0, errors.New("flaky")
	})
	require.Error(t, err)
	// Cancellation interrupts the backoff sleep, so only the first call runs.
	assert.Equal(t, 1, calls)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, time.Second, p.BaseDelay)
	assert.Equal(t, 10*time.Second, p.MaxDelay)
}

func TestDoElapsedIsRecorded(t *testing.T) {
	_, out, err := Do(context.Background(), fastPolicy(2), alwaysTransient, func(ctx context.Context) (int, error) {
		return 0, errors.New("flaky")
	})
	require.Error(t, err)
	assert.Greater(t, out.Elapsed, time.Duration(0))
}

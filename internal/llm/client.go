package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	openai "github.com/sashabaranov/go-openai"
)

// Request is one prompt sent to the remote model.
type Request struct {
	// System sets the model persona for this call.
	System string
	// Prompt is the user-role content.
	Prompt string
	// Temperature controls sampling randomness.
	Temperature float32
	// JSONMode asks the service to emit a single JSON object.
	JSONMode bool
	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int
}

// Client is the abstraction every remote-backed pipeline stage calls.
// Implementations perform exactly one attempt per call; retries are the
// caller's concern.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// RemoteCallError wraps a failed remote invocation with its retry
// classification. Transient errors are expected to succeed on retry.
type RemoteCallError struct {
	Transient bool
	Err       error
}

// Error implements the error interface.
func (e *RemoteCallError) Error() string {
	kind := "fatal"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("remote call failed (%s): %v", kind, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *RemoteCallError) Unwrap() error { return e.Err }

// Transient wraps err as a retryable remote-call failure.
func Transient(err error) *RemoteCallError {
	return &RemoteCallError{Transient: true, Err: err}
}

// Fatal wraps err as a non-retryable remote-call failure.
func Fatal(err error) *RemoteCallError {
	return &RemoteCallError{Transient: false, Err: err}
}

// IsTransient reports whether err should be retried. Unclassified errors
// are treated as fatal so that programming mistakes surface immediately
// instead of burning retry budget.
func IsTransient(err error) bool {
	var rce *RemoteCallError
	if errors.As(err, &rce) {
		return rce.Transient
	}
	return false
}

// Classify maps a raw provider error to a RemoteCallError.
//
// Rate limits, server-side failures, and network timeouts are transient.
// Everything else (auth failures, invalid requests, malformed responses)
// will not be fixed by retrying.
func Classify(err error) *RemoteCallError {
	if err == nil {
		return nil
	}

	var rce *RemoteCallError
	if errors.As(err, &rce) {
		return rce
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500 {
			return Transient(err)
		}
		return Fatal(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Transient(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient(err)
	}

	return Fatal(err)
}

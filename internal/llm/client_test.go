package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRateLimitIsTransient(t *testing.T) {
	err := Classify(&openai.APIError{HTTPStatusCode: 429, Message: "rate limited"})
	require.NotNil(t, err)
	assert.True(t, err.Transient)
}

func TestClassifyServerErrorsAreTransient(t *testing.T) {
	for _, code := range []int{500, 502, 503} {
		err := Classify(&openai.APIError{HTTPStatusCode: code})
		require.NotNil(t, err)
		assert.True(t, err.Transient, "status %d", code)
	}
}

func TestClassifyClientErrorsAreFatal(t *testing.T) {
	for _, code := range []int{400, 401, 403, 404} {
		err := Classify(&openai.APIError{HTTPStatusCode: code})
		require.NotNil(t, err)
		assert.False(t, err.Transient, "status %d", code)
	}
}

// timeoutErr satisfies net.Error.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNetworkTimeoutIsTransient(t *testing.T) {
	err := Classify(timeoutErr{})
	require.NotNil(t, err)
	assert.True(t, err.Transient)
}

func TestClassifyDeadlineExceededIsTransient(t *testing.T) {
	err := Classify(context.DeadlineExceeded)
	require.NotNil(t, err)
	assert.True(t, err.Transient)
}

func TestClassifyUnknownErrorIsFatal(t *testing.T) {
	err := Classify(errors.New("something odd"))
	require.NotNil(t, err)
	assert.False(t, err.Transient)
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyPreservesExistingClassification(t *testing.T) {
	orig := Transient(errors.New("wrapped earlier"))
	assert.Same(t, orig, Classify(orig))
}

func TestIsTransient(t *testing.T) {
	cause := errors.New("boom")
	assert.True(t, IsTransient(Transient(cause)))
	assert.False(t, IsTransient(Fatal(cause)))
	assert.False(t, IsTransient(cause))
	assert.False(t, IsTransient(nil))
}

func TestRemoteCallErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Transient(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transient")
	assert.Contains(t, Fatal(cause).Error(), "fatal")
}

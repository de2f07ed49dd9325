package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    Kind
		message string
	}{
		{"unauthorized", 401, KindInvalidKey, "invalid API key for ollama"},
		{"forbidden", 403, KindAuth, "authentication failed for ollama"},
		{"not found", 404, KindModelNotFound, `model "llama3.2" not found on ollama`},
		{"rate limited", 429, KindRateLimited, "ollama rate limit exceeded"},
		{"server error", 500, KindServer, "ollama server error"},
		{"bad gateway", 502, KindServer, "ollama server error"},
		{"unexpected status", 418, KindInvalidResponse, "unexpected response from ollama"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromHTTPStatus("ollama", "llama3.2", tt.status, "", 0)
			assert.Equal(t, tt.want, err.Kind)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestFromHTTPStatus_RetryAfter(t *testing.T) {
	err := FromHTTPStatus("openai", "gpt-4o-mini", 429, "", 30)
	assert.Equal(t, 30, err.RetryAfter)
	assert.Contains(t, err.Error(), "retry after 30s")
}

func TestFromHTTPStatus_TruncatesLongBody(t *testing.T) {
	err := FromHTTPStatus("gemini", "", 500, strings.Repeat("x", 500), 0)
	assert.LessOrEqual(t, len(err.Detail), 200)
}

func TestWrapTransport_Canceled(t *testing.T) {
	wrapped := WrapTransport("ollama", fmt.Errorf("request: %w", context.Canceled))
	assert.ErrorIs(t, wrapped, ErrCanceled)
}

func TestWrapTransport_DeadlineIsTimeout(t *testing.T) {
	wrapped := WrapTransport("ollama", context.DeadlineExceeded)

	var provErr *Error
	assert.ErrorAs(t, wrapped, &provErr)
	assert.Equal(t, KindTimeout, provErr.Kind)
}

func TestWrapTransport_ConnectionRefused(t *testing.T) {
	opErr := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: errors.New("connect: connection refused"),
	}
	wrapped := WrapTransport("ollama", opErr)

	var provErr *Error
	assert.ErrorAs(t, wrapped, &provErr)
	assert.Equal(t, KindConnection, provErr.Kind)
	assert.Contains(t, wrapped.Error(), "is the server running?")
}

func TestWrapTransport_GenericNetwork(t *testing.T) {
	wrapped := WrapTransport("anthropic", errors.New("tls handshake failed"))

	var provErr *Error
	assert.ErrorAs(t, wrapped, &provErr)
	assert.Equal(t, KindNetwork, provErr.Kind)
}

func TestWrapTransport_NilPassesThrough(t *testing.T) {
	assert.NoError(t, WrapTransport("ollama", nil))
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &Error{Kind: KindServer, Provider: "openai", Err: inner}
	assert.ErrorIs(t, err, inner)
}

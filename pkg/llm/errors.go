package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

var (
	// ErrCanceled reports that the user aborted a generation in flight. It is
	// not a failure; callers suppress the error message and return to the
	// prompt.
	ErrCanceled = errors.New("generation canceled")

	// ErrEmptyResponse reports that the provider answered but produced no
	// usable text.
	ErrEmptyResponse = errors.New("provider returned an empty response")
)

// Kind classifies provider failures so the CLI can print targeted advice.
type Kind int

const (
	KindConnection Kind = iota
	KindInvalidKey
	KindAuth
	KindModelNotFound
	KindRateLimited
	KindServer
	KindTimeout
	KindInvalidResponse
	KindNetwork
)

// Error is the failure type every provider returns. Provider names the
// backend, Model is filled when the failure is model-specific, RetryAfter
// carries the server's backoff hint in seconds when one was given.
type Error struct {
	Kind       Kind
	Provider   string
	Model      string
	RetryAfter int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConnection:
		return fmt.Sprintf("cannot connect to %s: %s (is the server running?)", e.Provider, e.Detail)
	case KindInvalidKey:
		return fmt.Sprintf("invalid API key for %s (check your configuration)", e.Provider)
	case KindAuth:
		return fmt.Sprintf("authentication failed for %s: %s", e.Provider, e.Detail)
	case KindModelNotFound:
		return fmt.Sprintf("model %q not found on %s", e.Model, e.Provider)
	case KindRateLimited:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("%s rate limit exceeded, retry after %ds", e.Provider, e.RetryAfter)
		}
		return fmt.Sprintf("%s rate limit exceeded", e.Provider)
	case KindServer:
		return fmt.Sprintf("%s server error: %s", e.Provider, e.Detail)
	case KindTimeout:
		return fmt.Sprintf("request to %s timed out", e.Provider)
	case KindInvalidResponse:
		return fmt.Sprintf("unexpected response from %s: %s", e.Provider, e.Detail)
	default:
		return fmt.Sprintf("network error talking to %s: %s", e.Provider, e.Detail)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// FromHTTPStatus maps a non-2xx provider response to the taxonomy. body is
// the response payload, truncated into Detail for diagnostics.
func FromHTTPStatus(provider, model string, status int, body string, retryAfter int) *Error {
	detail := strings.TrimSpace(body)
	if len(detail) > 200 {
		detail = detail[:200]
	}
	switch {
	case status == 401:
		return &Error{Kind: KindInvalidKey, Provider: provider, Detail: detail}
	case status == 403:
		return &Error{Kind: KindAuth, Provider: provider, Detail: detail}
	case status == 404:
		return &Error{Kind: KindModelNotFound, Provider: provider, Model: model, Detail: detail}
	case status == 429:
		return &Error{Kind: KindRateLimited, Provider: provider, RetryAfter: retryAfter, Detail: detail}
	case status >= 500:
		return &Error{Kind: KindServer, Provider: provider, Detail: fmt.Sprintf("HTTP %d: %s", status, detail)}
	default:
		return &Error{Kind: KindInvalidResponse, Provider: provider, Detail: fmt.Sprintf("HTTP %d: %s", status, detail)}
	}
}

// WrapTransport classifies an error from the HTTP round trip. Context
// cancellation passes through as ErrCanceled so the interrupt path stays
// distinguishable from real failures.
func WrapTransport(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return ErrCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &Error{Kind: KindTimeout, Provider: provider, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Provider: provider, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Kind: KindConnection, Provider: provider, Detail: opErr.Err.Error(), Err: err}
	}
	if strings.Contains(err.Error(), "connection refused") {
		return &Error{Kind: KindConnection, Provider: provider, Detail: err.Error(), Err: err}
	}
	return &Error{Kind: KindNetwork, Provider: provider, Detail: err.Error(), Err: err}
}

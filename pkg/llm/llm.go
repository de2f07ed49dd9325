// Package llm defines the provider abstraction the assistant generates
// commands through, plus the error taxonomy shared by every backend.
package llm

import "context"

// Provider generates a single completion for a fully rendered prompt.
// Implementations live in the provider subpackages; they return errors from
// this package so callers can give actionable advice without knowing which
// backend is configured.
type Provider interface {
	// Name identifies the backend in logs and status output, e.g. "ollama".
	Name() string
	// Model reports the configured model identifier.
	Model() string
	// Generate sends the prompt and returns the raw completion text. It
	// honors ctx cancellation; a canceled context surfaces as ErrCanceled.
	Generate(ctx context.Context, prompt string) (string, error)
}

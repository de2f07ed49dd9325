// Package assist ties configuration, prompt rendering, and providers
// together: it owns provider construction and runs generations that can be
// aborted by Ctrl-C without killing the process.
package assist

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/nlsh-dev/nlsh/pkg/config"
	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/llm/anthropic"
	"github.com/nlsh-dev/nlsh/pkg/llm/gemini"
	"github.com/nlsh-dev/nlsh/pkg/llm/ollama"
	"github.com/nlsh-dev/nlsh/pkg/llm/openai"
	"github.com/nlsh-dev/nlsh/pkg/logging"
)

// NewProvider builds the llm.Provider for the active provider section. The
// config must have passed Validate.
func NewProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewClient(ctx, cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model)
	case "ollama":
		return ollama.NewClient(cfg.Providers.Ollama.Model,
			ollama.WithBaseURL(cfg.Providers.Ollama.BaseURL)), nil
	case "openai":
		return openai.NewClient(cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.Model,
			cfg.Providers.OpenAI.BaseURL), nil
	case "anthropic":
		return anthropic.NewClient(cfg.Providers.Anthropic.APIKey, cfg.Providers.Anthropic.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Generate runs one completion, racing it against Ctrl-C. On interrupt the
// in-flight request is canceled, the worker is drained, and llm.ErrCanceled
// is returned; the process keeps running so the caller can return to its
// prompt.
func Generate(ctx context.Context, provider llm.Provider, prompt string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := logging.NewComponentLogger("assist").With(
		"request_id", uuid.NewString(),
		"provider", provider.Name(),
		"model", provider.Model(),
	)
	logger.Debug("starting generation")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	type result struct {
		text string
		err  error
	}
	// Buffered so the worker never leaks when the signal wins the race.
	done := make(chan result, 1)
	go func() {
		text, err := provider.Generate(ctx, prompt)
		done <- result{text, err}
	}()

	select {
	case <-sigCh:
		logger.Debug("generation interrupted")
		cancel()
		<-done
		return "", llm.ErrCanceled
	case r := <-done:
		if r.err != nil {
			logger.Debug("generation failed", "error", r.err)
			return "", r.err
		}
		logger.Debug("generation complete", "bytes", len(r.text))
		return r.text, nil
	}
}

// Package gemini implements the llm.Provider interface on top of the
// Google GenAI SDK, talking to the Gemini API backend.
package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/logging"
)

const providerName = "gemini"

var _ llm.Provider = (*Client)(nil)

type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures the Gemini client.
type Option func(*Client)

// WithModelsClient injects a custom generation backend (useful for tests).
func WithModelsClient(models modelsClient) Option {
	return func(c *Client) {
		if models != nil {
			c.models = models
		}
	}
}

// WithLogger injects a custom logger implementation.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client generates completions through the Gemini API.
type Client struct {
	model  string
	models modelsClient
	logger logging.Logger
}

// NewClient creates a Gemini-backed provider for the given model.
func NewClient(ctx context.Context, apiKey, model string, opts ...Option) (*Client, error) {
	client := &Client{
		model:  model,
		logger: logging.NewAPILogger(providerName),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.models == nil {
		sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, llm.WrapTransport(providerName, err)
		}
		client.models = sdk.Models
	}
	return client, nil
}

func (c *Client) Name() string  { return providerName }
func (c *Client) Model() string { return c.model }

// Generate sends the prompt as a single user turn and joins the text parts
// of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("sending generate content request", "model", c.model)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", llm.FromHTTPStatus(providerName, c.model, apiErr.Code, apiErr.Message, 0)
		}
		return "", llm.WrapTransport(providerName, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" && !part.Thought {
			builder.WriteString(part.Text)
		}
	}
	content := strings.TrimSpace(builder.String())
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

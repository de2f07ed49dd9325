// Package openai implements the llm.Provider interface on top of the
// official OpenAI Go SDK, covering OpenAI itself and any API-compatible
// endpoint reachable through a base URL override.
package openai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/logging"
)

const providerName = "openai"

var _ llm.Provider = (*Client)(nil)

type chatCompletionClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Option configures the OpenAI client.
type Option func(*Client)

// WithChatClient injects a custom chat completion backend (useful for tests).
func WithChatClient(chat chatCompletionClient) Option {
	return func(c *Client) {
		if chat != nil {
			c.chat = chat
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

// Client generates completions through the chat completions endpoint.
type Client struct {
	model  string
	chat   chatCompletionClient
	logger logging.Logger
}

// NewClient creates an OpenAI-backed provider. baseURL is optional and
// selects an API-compatible alternative endpoint when set.
func NewClient(apiKey, model, baseURL string, opts ...Option) *Client {
	sdkOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if strings.TrimSpace(baseURL) != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(baseURL))
	}
	sdk := openai.NewClient(sdkOpts...)

	client := &Client{
		model:  model,
		chat:   &sdk.Chat.Completions,
		logger: logging.NewAPILogger(providerName),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) Name() string  { return providerName }
func (c *Client) Model() string { return c.model }

// Generate sends the prompt as a single user message and returns the
// assistant's reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("sending chat completion request", "model", c.model)

	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", llm.FromHTTPStatus(providerName, c.model, apierr.StatusCode, apierr.Error(), 0)
		}
		return "", llm.WrapTransport(providerName, err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

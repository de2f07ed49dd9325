// Package anthropic implements the llm.Provider interface on top of the
// official Anthropic Go SDK.
package anthropic

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/logging"
)

const (
	providerName = "anthropic"

	// Command and explanation completions are short; this bounds runaway
	// responses without cutting legitimate ones off.
	maxTokens = 1024
)

var _ llm.Provider = (*Client)(nil)

type messageClient interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Option configures the Anthropic client.
type Option func(*Client)

// WithMessageClient injects a custom messages backend (useful for tests).
func WithMessageClient(messages messageClient) Option {
	return func(c *Client) {
		if messages != nil {
			c.messages = messages
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

// Client generates completions through the messages endpoint.
type Client struct {
	model    string
	messages messageClient
	logger   logging.Logger
}

// NewClient creates an Anthropic-backed provider for the given model.
func NewClient(apiKey, model string, opts ...Option) *Client {
	sdk := anthropic.NewClient(option.WithAPIKey(apiKey))

	client := &Client{
		model:    model,
		messages: &sdk.Messages,
		logger:   logging.NewAPILogger(providerName),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) Name() string  { return providerName }
func (c *Client) Model() string { return c.model }

// Generate sends the prompt as a single user message and joins the text
// blocks of the reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("sending message request", "model", c.model)

	msg, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			return "", llm.FromHTTPStatus(providerName, c.model, apierr.StatusCode, apierr.Error(), 0)
		}
		return "", llm.WrapTransport(providerName, err)
	}

	var builder strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	content := strings.TrimSpace(builder.String())
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

// Package ollama implements the llm.Provider interface against a local
// Ollama server's REST API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/logging"
)

const (
	defaultBaseURL   = "http://localhost:11434"
	generateEndpoint = "/api/generate"
	providerName     = "ollama"
)

var _ llm.Provider = (*Client)(nil)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Ollama client.
type Option func(*Client)

// WithBaseURL overrides the Ollama base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient injects a custom HTTP client (useful for tests).
func WithHTTPClient(client httpDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
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

// Client talks to Ollama's non-streaming generate endpoint.
type Client struct {
	model      string
	baseURL    string
	httpClient httpDoer
	logger     logging.Logger
}

// NewClient creates an Ollama-backed provider for the given model.
func NewClient(model string, opts ...Option) *Client {
	client := &Client{
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logging.NewAPILogger(providerName),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) Name() string  { return providerName }
func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate sends the prompt to /api/generate and returns the completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + generateEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending generate request", "model", c.model, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", llm.WrapTransport(providerName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.WrapTransport(providerName, err)
	}

	if resp.StatusCode != http.StatusOK {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return "", llm.FromHTTPStatus(providerName, c.model, resp.StatusCode, string(body), retryAfter)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &llm.Error{Kind: llm.KindInvalidResponse, Provider: providerName, Detail: err.Error(), Err: err}
	}
	if parsed.Error != "" {
		return "", &llm.Error{Kind: llm.KindServer, Provider: providerName, Detail: parsed.Error}
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", llm.ErrEmptyResponse
	}
	return parsed.Response, nil
}

func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

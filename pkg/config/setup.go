package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nlsh-dev/nlsh/pkg/term"
)

// Setup runs the first-run provider wizard: pick a provider, enter its
// credentials, persist. Existing sections prefill the defaults so switching
// providers keeps saved credentials.
type Setup struct {
	In     io.Reader
	Out    io.Writer
	Styles term.Styles

	reader *bufio.Reader
}

// NewSetup builds a setup wizard over the given streams.
func NewSetup(in io.Reader, out io.Writer) *Setup {
	return &Setup{
		In:     in,
		Out:    out,
		Styles: term.NewStyles(out),
		reader: bufio.NewReader(in),
	}
}

var providerChoices = []struct {
	label string
	key   string
}{
	{"Gemini API", "gemini"},
	{"Ollama", "ollama"},
	{"OpenAI Compatible", "openai"},
	{"Anthropic", "anthropic"},
}

// Run executes the wizard and saves the resulting configuration.
func (s *Setup) Run(existing *Config) (*Config, error) {
	cfg := &Config{}
	if existing != nil {
		*cfg = *existing
	}

	fmt.Fprintln(s.Out, s.Styles.Question.Render("Select API Provider"))
	for i, choice := range providerChoices {
		marker := " "
		if cfg.Provider == choice.key {
			marker = "*"
		}
		fmt.Fprintf(s.Out, "  %s %d) %s\n", marker, i+1, choice.label)
	}

	idx, err := s.readChoice(len(providerChoices))
	if err != nil {
		return nil, err
	}
	selected := providerChoices[idx]

	switch selected.key {
	case "gemini":
		err = s.configureGemini(cfg)
	case "ollama":
		err = s.configureOllama(cfg)
	case "openai":
		err = s.configureOpenAI(cfg)
	case "anthropic":
		err = s.configureAnthropic(cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.Provider = selected.key
	if err := Save(cfg); err != nil {
		return nil, err
	}

	fmt.Fprintln(s.Out, s.Styles.Bold.Render("✓ Configuration saved!"))
	fmt.Fprintln(s.Out)
	fmt.Fprintf(s.Out, "Provider: %s\n", selected.label)
	return cfg, nil
}

func (s *Setup) configureGemini(cfg *Config) error {
	existing := cfg.Providers.Gemini
	defaults := GeminiConfig{Model: "gemini-flash-latest"}
	if existing != nil {
		defaults = *existing
	}

	apiKey, err := s.readInput("Gemini API key", defaults.APIKey)
	if err != nil {
		return err
	}
	model, err := s.readModelName(defaults.Model)
	if err != nil {
		return err
	}
	cfg.Providers.Gemini = &GeminiConfig{APIKey: apiKey, Model: model}
	return nil
}

func (s *Setup) configureOllama(cfg *Config) error {
	existing := cfg.Providers.Ollama
	defaults := OllamaConfig{BaseURL: "http://localhost:11434"}
	if existing != nil {
		defaults = *existing
	}

	baseURL, err := s.readInput("Ollama base URL", defaults.BaseURL)
	if err != nil {
		return err
	}
	model, err := s.readModelName(defaults.Model)
	if err != nil {
		return err
	}
	cfg.Providers.Ollama = &OllamaConfig{BaseURL: baseURL, Model: model}
	return nil
}

func (s *Setup) configureOpenAI(cfg *Config) error {
	existing := cfg.Providers.OpenAI
	defaults := OpenAIConfig{BaseURL: "https://api.openai.com/v1"}
	if existing != nil {
		defaults = *existing
	}

	baseURL, err := s.readInput("API base URL", defaults.BaseURL)
	if err != nil {
		return err
	}
	apiKey, err := s.readInput("API key (leave empty for local servers)", defaults.APIKey)
	if err != nil {
		return err
	}
	model, err := s.readModelName(defaults.Model)
	if err != nil {
		return err
	}
	cfg.Providers.OpenAI = &OpenAIConfig{BaseURL: baseURL, APIKey: apiKey, Model: model}
	return nil
}

func (s *Setup) configureAnthropic(cfg *Config) error {
	existing := cfg.Providers.Anthropic
	defaults := AnthropicConfig{Model: "claude-3-5-haiku-latest"}
	if existing != nil {
		defaults = *existing
	}

	apiKey, err := s.readInput("Anthropic API key", defaults.APIKey)
	if err != nil {
		return err
	}
	model, err := s.readModelName(defaults.Model)
	if err != nil {
		return err
	}
	cfg.Providers.Anthropic = &AnthropicConfig{APIKey: apiKey, Model: model}
	return nil
}

// readChoice reads a 1-based menu selection, defaulting to the first entry
// on an empty line.
func (s *Setup) readChoice(n int) (int, error) {
	for {
		fmt.Fprintf(s.Out, "Choice [1-%d]: ", n)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return 0, nil
		}
		var idx int
		if _, err := fmt.Sscanf(line, "%d", &idx); err == nil && idx >= 1 && idx <= n {
			return idx - 1, nil
		}
		fmt.Fprintln(s.Out, "Invalid selection")
	}
}

// readInput prompts for a value; an empty line keeps the default.
func (s *Setup) readInput(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(s.Out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(s.Out, "%s: ", label)
	}
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// readModelName rejects blank model names.
func (s *Setup) readModelName(defaultValue string) (string, error) {
	for {
		model, err := s.readInput("Model name", defaultValue)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(model) != "" {
			return model, nil
		}
		fmt.Fprintln(s.Out, s.Styles.Question.Render("Model name cannot be empty"))
	}
}

func (s *Setup) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

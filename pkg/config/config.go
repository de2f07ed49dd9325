// Package config loads and persists the provider configuration and the
// prompt override files under the user's config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nlsh-dev/nlsh/pkg/logging"
)

const (
	appDirName        = "nlsh"
	configFileName    = "config.yaml"
	systemPromptFile  = "prompt.txt"
	explainPromptFile = "explain-prompt.txt"
)

// ErrNotConfigured reports a missing config file; the CLI responds by
// running the interactive setup.
var ErrNotConfigured = errors.New("no configuration found")

// Config is the persisted on-disk configuration. Credentials for every
// provider the user has configured are kept so switching back does not
// require re-entering them.
type Config struct {
	Provider  string    `yaml:"provider"`
	Providers Providers `yaml:"providers"`
}

// Providers holds the per-provider sections. A nil section means the
// provider was never configured.
type Providers struct {
	Gemini    *GeminiConfig    `yaml:"gemini,omitempty"`
	Ollama    *OllamaConfig    `yaml:"ollama,omitempty"`
	OpenAI    *OpenAIConfig    `yaml:"openai,omitempty"`
	Anthropic *AnthropicConfig `yaml:"anthropic,omitempty"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Dir returns the nlsh config directory, creating it if needed.
// NLSH_CONFIG_DIR overrides the location, which tests rely on.
func Dir() (string, error) {
	if override := os.Getenv("NLSH_CONFIG_DIR"); override != "" {
		if err := os.MkdirAll(override, 0755); err != nil {
			return "", fmt.Errorf("create config directory: %w", err)
		}
		return override, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the configuration. A .env file in the working directory is
// loaded first so API keys can live outside the config file; environment
// variables fill in missing keys after parsing.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	if err := godotenv.Load(); err == nil {
		logging.Debug("loaded .env file")
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvKeys()
	return &cfg, nil
}

// applyEnvKeys fills empty API keys from the conventional environment
// variables so keys never have to be written to disk.
func (c *Config) applyEnvKeys() {
	if c.Providers.Gemini != nil && c.Providers.Gemini.APIKey == "" {
		c.Providers.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Providers.OpenAI != nil && c.Providers.OpenAI.APIKey == "" {
		c.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Providers.Anthropic != nil && c.Providers.Anthropic.APIKey == "" {
		c.Providers.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// Save writes the configuration with owner-only permissions since it may
// contain API keys.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	contents, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, contents, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}

// Validate checks that the active provider has a usable section.
func (c *Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Providers.Gemini == nil || c.Providers.Gemini.Model == "" {
			return errors.New("gemini provider selected but not configured")
		}
		if c.Providers.Gemini.APIKey == "" {
			return errors.New("gemini API key missing (set it in the config or GEMINI_API_KEY)")
		}
	case "ollama":
		if c.Providers.Ollama == nil || c.Providers.Ollama.Model == "" {
			return errors.New("ollama provider selected but not configured")
		}
	case "openai":
		if c.Providers.OpenAI == nil || c.Providers.OpenAI.Model == "" {
			return errors.New("openai provider selected but not configured")
		}
	case "anthropic":
		if c.Providers.Anthropic == nil || c.Providers.Anthropic.Model == "" {
			return errors.New("anthropic provider selected but not configured")
		}
		if c.Providers.Anthropic.APIKey == "" {
			return errors.New("anthropic API key missing (set it in the config or ANTHROPIC_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlsh-dev/nlsh/pkg/prompt"
)

// SystemPromptPath returns the system prompt override file path.
func SystemPromptPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, systemPromptFile), nil
}

// ExplainPromptPath returns the explain prompt override file path.
func ExplainPromptPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, explainPromptFile), nil
}

// LoadSystemPrompt returns the saved system prompt override, or "" when none
// exists or the file is blank.
func LoadSystemPrompt() string {
	return loadPromptFile(SystemPromptPath)
}

// LoadExplainPrompt returns the saved explain prompt override, or "".
func LoadExplainPrompt() string {
	return loadPromptFile(ExplainPromptPath)
}

func loadPromptFile(pathFn func() (string, error)) string {
	path, err := pathFn()
	if err != nil {
		return ""
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(string(contents))
	return text
}

// SaveSystemPrompt writes the system prompt override file.
func SaveSystemPrompt(text string) error {
	path, err := SystemPromptPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

// SaveExplainPrompt writes the explain prompt override file.
func SaveExplainPrompt(text string) error {
	path, err := ExplainPromptPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

// EnsurePromptFiles seeds missing override files with the defaults so users
// have something to edit.
func EnsurePromptFiles() error {
	if LoadSystemPrompt() == "" {
		if err := SaveSystemPrompt(prompt.DefaultSystemTemplate); err != nil {
			return fmt.Errorf("seed system prompt: %w", err)
		}
	}
	if LoadExplainPrompt() == "" {
		if err := SaveExplainPrompt(prompt.DefaultExplainTemplate); err != nil {
			return fmt.Errorf("seed explain prompt: %w", err)
		}
	}
	return nil
}

// EffectiveSystemPrompt returns the override when it is valid, the default
// otherwise.
func EffectiveSystemPrompt() string {
	if saved := LoadSystemPrompt(); saved != "" && prompt.ValidateSystemTemplate(saved) {
		return saved
	}
	return ""
}

// EffectiveExplainPrompt returns the override when it is valid, the default
// otherwise.
func EffectiveExplainPrompt() string {
	if saved := LoadExplainPrompt(); saved != "" && prompt.ValidateExplainTemplate(saved) {
		return saved
	}
	return ""
}

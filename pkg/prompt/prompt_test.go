package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt_SubstitutesPlaceholders(t *testing.T) {
	got := BuildSystemPrompt("list files", "")

	assert.Contains(t, got, "User request: list files")
	assert.NotContains(t, got, "{request}")
	assert.NotContains(t, got, "{os}")
	assert.NotContains(t, got, "{cwd}")
	assert.NotContains(t, got, "{home}")
	assert.NotContains(t, got, "{user}")
	assert.NotContains(t, got, "{shell}")
}

func TestBuildSystemPrompt_CustomTemplate(t *testing.T) {
	got := BuildSystemPrompt("list files", "do this: {request}")
	assert.Equal(t, "do this: list files", got)
}

func TestBuildExplainPrompt(t *testing.T) {
	got := BuildExplainPrompt("rm -rf /tmp/x", "")
	assert.Contains(t, got, "The command to explain is: rm -rf /tmp/x")
	assert.NotContains(t, got, "{command}")

	custom := BuildExplainPrompt("ls", "describe: {command}")
	assert.Equal(t, "describe: ls", custom)
}

func TestValidateTemplates(t *testing.T) {
	assert.True(t, ValidateSystemTemplate(DefaultSystemTemplate))
	assert.False(t, ValidateSystemTemplate("no placeholder here"))

	assert.True(t, ValidateExplainTemplate(DefaultExplainTemplate))
	assert.False(t, ValidateExplainTemplate("no placeholder here"))
}

func TestDefaultTemplatesDoNotCrossPlaceholders(t *testing.T) {
	assert.False(t, strings.Contains(DefaultSystemTemplate, "{command}"))
	assert.False(t, strings.Contains(DefaultExplainTemplate, "{request}"))
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain command", "ls -la", "ls -la"},
		{"surrounding whitespace", "  ls -la \n", "ls -la"},
		{"bare fences", "```\nls -la\n```", "ls -la"},
		{"bash fence", "```bash\nls -la\n```", "ls -la"},
		{"shell fence", "```shell\nls -la\n```", "ls -la"},
		{"zsh fence", "```zsh\nls -la\n```", "ls -la"},
		{"sh fence", "```sh\nls -la\n```", "ls -la"},
		{"fence without newline", "```ls```", "ls"},
		{"empty response", "", ""},
		{"multiline survives", "cd /tmp\nls", "cd /tmp\nls"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.input))
		})
	}
}

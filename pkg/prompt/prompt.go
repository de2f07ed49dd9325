// Package prompt renders the system and explain prompt templates sent to
// the configured provider.
package prompt

import (
	"strings"

	"github.com/nlsh-dev/nlsh/pkg/sysinfo"
)

// DefaultSystemTemplate translates a natural-language request into a shell
// command. Placeholders are substituted with live environment context before
// each request.
const DefaultSystemTemplate = `You are a shell command translator. Convert the user's request into a shell command for {os}.

Environment context:
- Current dir: {cwd}
- Home dir: {home}
- User: {user}
- Shell: {shell}

Rules:
- Output ONLY the command, nothing else
- No explanations, no markdown, no backticks
- If unclear, make a reasonable assumption
- Prefer simple, common commands
- Use appropriate shell syntax and commands for this environment
- Consider the current directory context when generating paths
- Use ~ for home directory when appropriate

User request: {request}`

// DefaultExplainTemplate produces the one-sentence safety-tagged explanation
// shown when the user presses E at the confirmation prompt.
const DefaultExplainTemplate = `You are a concise command-line assistant. Your task is to explain the given shell command in a single simple sentence, focusing on the main purpose and key flags.

The command to explain is: {command}

Formatting rules:
- Always start the response with a single safety emoji: ✅ (safe), ⚠️  (risky), or ❌ (dangerous).
- No other emojis are allowed.
- For ✅ commands: Output ONLY the emoji and the explanation.
- For ⚠️ or ❌ commands: Output the emoji, the explanation, and a short warning about the danger.
- Do NOT include the command in your response.
- Do NOT include any markdown, backticks, or code formatting.
- You may emphasise important words with ONLY the following html tags: ` + "`<b></b>`, `<i></i>`, `<u></u>`" + `. No other formatting allowed.

Examples:
Input command: ls -la
Output: ✅ Lists all files and directories in the current folder, including hidden ones, in a detailed format.

Input command: rm -rf /
Output: ❌ Forcefully and recursively <b>deletes all files</b> and directories starting from the root. <b>Warning:</b> This will completely destroy your operating system.`

// BuildSystemPrompt renders template (or the default when empty) with the
// current environment context and the user's request.
func BuildSystemPrompt(request, template string) string {
	if template == "" {
		template = DefaultSystemTemplate
	}
	r := strings.NewReplacer(
		"{os}", sysinfo.OS(),
		"{cwd}", sysinfo.CurrentDirectory(),
		"{home}", sysinfo.HomeDirectory(),
		"{user}", sysinfo.Username(),
		"{shell}", sysinfo.Shell(),
		"{request}", request,
	)
	return r.Replace(template)
}

// BuildExplainPrompt renders template (or the default when empty) with the
// command to explain.
func BuildExplainPrompt(command, template string) string {
	if template == "" {
		template = DefaultExplainTemplate
	}
	return strings.ReplaceAll(template, "{command}", command)
}

// ValidateSystemTemplate reports whether a custom system template carries the
// required request placeholder.
func ValidateSystemTemplate(template string) bool {
	return strings.Contains(template, "{request}")
}

// ValidateExplainTemplate reports whether a custom explain template carries
// the required command placeholder.
func ValidateExplainTemplate(template string) bool {
	return strings.Contains(template, "{command}")
}

// CleanResponse strips the markdown code fences models add despite being
// told not to, plus surrounding whitespace.
func CleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		for _, lang := range []string{"shell", "bash", "zsh", "sh"} {
			cleaned = strings.TrimPrefix(cleaned, lang)
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}

	return strings.TrimSpace(cleaned)
}

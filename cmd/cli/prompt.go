package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/pkg/config"
	"github.com/nlsh-dev/nlsh/pkg/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Show or edit the prompt templates",
}

var promptSystemCmd = &cobra.Command{
	Use:   "system",
	Short: "The command-generation prompt",
}

var promptExplainCmd = &cobra.Command{
	Use:   "explain",
	Short: "The explanation prompt",
}

func init() {
	promptSystemCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active system prompt",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				showPrompt(config.LoadSystemPrompt(), prompt.DefaultSystemTemplate)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Open the system prompt in $EDITOR",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				err := editPrompt(config.SystemPromptPath, config.LoadSystemPrompt,
					config.SaveSystemPrompt, prompt.DefaultSystemTemplate)
				if err != nil {
					return err
				}
				if saved := config.LoadSystemPrompt(); saved != "" && !prompt.ValidateSystemTemplate(saved) {
					printWarning("system prompt must contain the {request} placeholder.")
				}
				return nil
			},
		},
	)

	promptExplainCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active explain prompt",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				showPrompt(config.LoadExplainPrompt(), prompt.DefaultExplainTemplate)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Open the explain prompt in $EDITOR",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				err := editPrompt(config.ExplainPromptPath, config.LoadExplainPrompt,
					config.SaveExplainPrompt, prompt.DefaultExplainTemplate)
				if err != nil {
					return err
				}
				if saved := config.LoadExplainPrompt(); saved != "" && !prompt.ValidateExplainTemplate(saved) {
					printWarning("explain prompt must contain the {command} placeholder.")
				}
				return nil
			},
		},
	)

	promptCmd.AddCommand(promptSystemCmd, promptExplainCmd)
	RootCmd.AddCommand(promptCmd)
}

func showPrompt(override, fallback string) {
	if override == "" {
		fmt.Println(fallback)
		return
	}
	fmt.Println(override)
}

// editPrompt seeds the prompt file with the default when it is missing and
// opens it in the user's editor.
func editPrompt(pathFn func() (string, error), load func() string, save func(string) error, fallback string) error {
	path, err := pathFn()
	if err != nil {
		return err
	}
	if load() == "" {
		if err := save(fallback); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "nano"
	}
	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

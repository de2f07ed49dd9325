package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/pkg/term"
)

var explainCmd = &cobra.Command{
	Use:   "explain <command...>",
	Short: "Explain a shell command",
	Long:  `Ask the configured provider what a command does, without offering to run it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := configuredProvider(cmd.Context())
		if err != nil {
			return err
		}

		explanation, err := fetchExplanation(provider, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if explanation == "" {
			printError("failed to generate a valid explanation.")
			return nil
		}

		fmt.Fprint(os.Stderr, renderExplanation(explanation))
		return nil
	},
}

// renderExplanation renders a standalone explanation as markdown on a
// terminal and as plain text otherwise. The inline emphasis tags the model
// is instructed to use are mapped to markdown first.
func renderExplanation(explanation string) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return term.RenderInlineTags(explanation, false) + "\n"
	}

	md := strings.NewReplacer(
		"<b>", "**", "</b>", "**",
		"<i>", "*", "</i>", "*",
		"<u>", "", "</u>", "",
	).Replace(explanation)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(term.Width()),
	)
	if err != nil {
		return term.RenderInlineTags(explanation, true) + "\n"
	}
	out, err := renderer.Render(md)
	if err != nil {
		return term.RenderInlineTags(explanation, true) + "\n"
	}
	return out
}

func init() {
	RootCmd.AddCommand(explainCmd)
}

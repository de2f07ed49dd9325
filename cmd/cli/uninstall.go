package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/pkg/install"
	"github.com/nlsh-dev/nlsh/pkg/term"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the shell integration and optionally the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return install.Uninstall(os.Stderr, confirmKey)
	},
}

// confirmKey asks a y/n question on stderr and reads one key. Anything
// other than an explicit yes or no falls back to the default.
func confirmKey(question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(os.Stderr, "%s %s ", question, hint)

	if !term.Interactive() {
		fmt.Fprintln(os.Stderr)
		return defaultYes
	}

	ev := term.ReadKey(os.Stdin)
	fmt.Fprintln(os.Stderr)
	switch {
	case ev.Key == term.KeyChar && (ev.Char == 'y' || ev.Char == 'Y'):
		return true
	case ev.Key == term.KeyChar && (ev.Char == 'n' || ev.Char == 'N'):
		return false
	}
	return defaultYes
}

func init() {
	RootCmd.AddCommand(uninstallCmd)
}

package install

import (
	"fmt"
	"io"
	"os"

	"github.com/nlsh-dev/nlsh/pkg/config"
)

// ConfirmFunc asks the user a yes/no question and returns the answer. The
// CLI wires a raw-mode key prompt; tests wire a canned answer.
type ConfirmFunc func(question string, defaultYes bool) bool

// Uninstall removes the shell integration and, when confirmed, the config
// directory. Progress goes to out. The binary itself is left for the
// package manager that installed it.
func Uninstall(out io.Writer, confirm ConfirmFunc) error {
	fmt.Fprintln(out, "uninstalling nlsh...")
	fmt.Fprintln(out)

	removed, err := RemoveAll()
	switch {
	case err != nil:
		fmt.Fprintf(out, "  warning: failed to remove shell integration: %v\n", err)
	case removed:
		fmt.Fprintln(out, "  ✓ removed shell integration")
	default:
		fmt.Fprintln(out, "  no shell integration found")
	}

	if confirm("Remove configuration?", false) {
		dir, err := config.Dir()
		if err == nil {
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("remove configuration: %w", err)
			}
			fmt.Fprintln(out, "  ✓ removed configuration")
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "nlsh successfully uninstalled.")
	fmt.Fprintln(out, "please restart your shell or run 'source ~/.bashrc' (or 'source ~/.config/fish/config.fish' for fish).")
	return nil
}

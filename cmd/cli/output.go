package cli

import (
	"fmt"
	"os"

	"github.com/nlsh-dev/nlsh/pkg/term"
)

// PrintError reports a failure as a single styled line on stderr. main
// calls this for errors escaping Execute, since the root command silences
// cobra's own printing.
func PrintError(message string) {
	styles := term.NewStyles(os.Stderr)
	fmt.Fprintf(os.Stderr, "%s %s\n", styles.Error.Render("error:"), message)
}

func printError(message string) { PrintError(message) }

func printWarning(message string) {
	styles := term.NewStyles(os.Stderr)
	fmt.Fprintf(os.Stderr, "%s %s\n", styles.Warning.Render("warning:"), message)
}

func printCheck(message string) {
	styles := term.NewStyles(os.Stderr)
	fmt.Fprintf(os.Stderr, "%s %s\n", styles.Check.Render("✓"), message)
}

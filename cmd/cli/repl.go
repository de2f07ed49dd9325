package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/term"
)

// runREPL reads requests in a loop until Ctrl-C or end of input at the
// prompt. A request declined with 'n' at the confirmation stage is seeded
// back into the next prompt so it can be reworded instead of retyped;
// Ctrl-C anywhere is fatal and exits 130.
func runREPL(provider llm.Provider) error {
	prefill := ""
	for {
		input, outcome := readInput(prefill)
		prefill = ""
		switch outcome {
		case term.EditInterrupted:
			term.ShowCursor(os.Stderr)
			os.Exit(exitInterrupt)
		case term.EditCancelled:
			return nil
		}

		request := strings.TrimSpace(input)
		if request == "" {
			continue
		}

		result, err := processRequest(provider, request, modeInteractive)
		if err != nil {
			printError(err.Error())
			continue
		}
		if result.kind == outcomeInterrupted {
			term.ShowCursor(os.Stderr)
			os.Exit(exitInterrupt)
		}
		if result.prefill != "" {
			// Overwrite the previous prompt row with the reseeded one.
			fmt.Fprint(os.Stderr, "\x1b[1A\x1b[K")
			prefill = result.prefill
		}
	}
}

// readInput runs one prompt cycle. The prompt shows the working directory,
// which the cd builtin changes between iterations, so it is rebuilt every
// time.
func readInput(prefill string) (string, term.EditOutcome) {
	styles := term.NewStyles(os.Stderr)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}

	editor := &term.Editor{
		In:  os.Stdin,
		Out: os.Stderr,
		Prompt: fmt.Sprintf("%s:%s%s ",
			styles.Accent.Render("nlsh"),
			styles.Dim.Bold(true).Render(cwd),
			styles.Bold.Render("$")),
		Width:        term.Width,
		KeepOnAccept: true,
	}
	return editor.Run(prefill)
}

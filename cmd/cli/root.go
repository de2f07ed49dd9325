// Package cli wires the cobra command tree: bare invocations start the
// REPL, arguments are treated as a single natural-language request, and
// subcommands cover configuration, prompts, explain, update, and uninstall.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/pkg/assist"
	"github.com/nlsh-dev/nlsh/pkg/config"
	"github.com/nlsh-dev/nlsh/pkg/install"
	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/logging"
	"github.com/nlsh-dev/nlsh/pkg/prompt"
	"github.com/nlsh-dev/nlsh/pkg/term"
	"github.com/nlsh-dev/nlsh/pkg/version"
)

// Interrupt exit code, following shell convention (128+SIGINT).
const exitInterrupt = 130

var (
	// Global flags
	verbose bool
	quiet   bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "nlsh [request...]",
	Short:   "Natural language shell assistant",
	Long:    `nlsh turns natural-language requests into shell commands, shows them for confirmation, and runs them.`,
	Version: version.GetVersion(),
	Args:    cobra.ArbitraryArgs,
	// Errors get styled printing in main; usage spam on runtime errors
	// helps nobody.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case quiet:
			logging.SetGlobalLogger(logging.NewQuietLogger())
		case verbose:
			logging.SetGlobalLogger(logging.NewVerboseLogger())
		default:
			logging.SetGlobalLogger(logging.NewFileLoggerFromEnv("nlsh-debug.log"))
		}
		term.HideControlEcho(os.Stdin)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = config.EnsurePromptFiles()
		if p := config.LoadSystemPrompt(); p != "" && !prompt.ValidateSystemTemplate(p) {
			printWarning("system prompt must contain {request} placeholder, using default.")
		}
		if p := config.LoadExplainPrompt(); p != "" && !prompt.ValidateExplainTemplate(p) {
			printWarning("explain prompt must contain {command} placeholder, using default.")
		}

		if added, err := install.AutoSetup(); err == nil && added {
			printCheck("shell integration installed")
			fmt.Fprintln(os.Stderr, "restart shell or run 'source ~/.bashrc' ('source ~/.config/fish/config.fish' for fish).")
			return nil
		}

		provider, err := configuredProvider(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return runREPL(provider)
		}
		return runSingle(provider, strings.Join(args, " "))
	},
}

// configuredProvider loads the config, falling back to the setup wizard on
// first run, and builds the active provider.
func configuredProvider(ctx context.Context) (llm.Provider, error) {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			printError("no API provider configured.")
			fmt.Fprintln(os.Stderr, "run 'nlsh api' to set up your preferred provider.")
			os.Exit(1)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return assist.NewProvider(ctx, cfg)
}

// runSingle handles one request. An interrupt exits 130 so the shell
// wrapper does not eval anything; a decline returns normally.
func runSingle(provider llm.Provider, request string) error {
	outcome, err := processRequest(provider, request, modeSingle)
	if err != nil {
		return err
	}
	switch outcome.kind {
	case outcomeInterrupted:
		term.ShowCursor(os.Stderr)
		os.Exit(exitInterrupt)
	case outcomeExecuted:
		if outcome.exitCode != 0 {
			os.Exit(outcome.exitCode)
		}
	}
	return nil
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level)")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (errors only)")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	isatty "github.com/mattn/go-isatty"

	"github.com/nlsh-dev/nlsh/pkg/assist"
	"github.com/nlsh-dev/nlsh/pkg/config"
	"github.com/nlsh-dev/nlsh/pkg/llm"
	"github.com/nlsh-dev/nlsh/pkg/prompt"
	"github.com/nlsh-dev/nlsh/pkg/shell"
	"github.com/nlsh-dev/nlsh/pkg/term"
)

type commandMode int

const (
	modeSingle commandMode = iota
	modeInteractive
)

type outcomeKind int

const (
	// outcomeDone: the request ran to completion (executed, printed, or
	// declined).
	outcomeDone outcomeKind = iota
	// outcomeExecuted: a command was executed; exitCode carries its status.
	outcomeExecuted
	// outcomeCanceled: generation was aborted; nothing to do.
	outcomeCanceled
	// outcomeInterrupted: Ctrl-C at a prompt. Always fatal; the outermost
	// call site exits 130.
	outcomeInterrupted
)

// outcome is how one processed request ended. prefill is set on an
// interactive decline so the next prompt reseeds the request for rewording.
type outcome struct {
	kind     outcomeKind
	exitCode int
	prefill  string
}

// processRequest runs the full pipeline for one request: generate, confirm
// (with optional explain and inline editing), then execute or print.
func processRequest(provider llm.Provider, request string, mode commandMode) (outcome, error) {
	styles := term.NewStyles(os.Stderr)

	fmt.Fprint(os.Stderr, styles.Dim.Render(fmt.Sprintf("using %s...", provider.Model())))

	sysPrompt := prompt.BuildSystemPrompt(request, config.EffectiveSystemPrompt())
	response, err := assist.Generate(context.Background(), provider, sysPrompt)
	term.ClearLine(os.Stderr)
	if err != nil {
		if errors.Is(err, llm.ErrCanceled) {
			if mode == modeSingle {
				return outcome{kind: outcomeInterrupted}, nil
			}
			return outcome{kind: outcomeCanceled}, nil
		}
		return outcome{}, err
	}

	command := prompt.CleanResponse(response)
	if command == "" {
		return outcome{}, fmt.Errorf("%s returned an empty command", provider.Name())
	}

	confirmer := term.NewConfirmer()
	editor := term.NewCommandEditor(os.Stdin, os.Stderr, styles)

	for {
		cmdRows := confirmer.DisplayCommand(command)

		switch confirmer.ConfirmWithExplain(cmdRows) {
		case term.ConfirmYes:
			return executeOrPrint(command)
		case term.ConfirmNo:
			return outcome{kind: outcomeDone}, nil
		case term.ConfirmCancel:
			return declined(request, mode), nil
		case term.ConfirmInterrupted:
			return outcome{kind: outcomeInterrupted}, nil
		case term.ConfirmEdit:
			edited, editOutcome := editor.Run(command)
			switch editOutcome {
			case term.EditAccepted:
				command = edited
			case term.EditCancelled:
				return outcome{kind: outcomeDone}, nil
			case term.EditInterrupted:
				return outcome{kind: outcomeInterrupted}, nil
			}
		case term.ConfirmExplain:
			result, err := explainAndConfirm(provider, confirmer, editor, command, cmdRows, request, mode)
			if err != nil {
				return outcome{}, err
			}
			if result.next == "" {
				return result.outcome, nil
			}
			command = result.next
		}
	}
}

// declined maps an explicit cancel. In the REPL the request is handed back
// as a prefill so it can be reworded; single-shot mode simply returns.
func declined(request string, mode commandMode) outcome {
	if mode == modeInteractive {
		return outcome{kind: outcomeDone, prefill: request}
	}
	return outcome{kind: outcomeDone}
}

type explainResult struct {
	outcome outcome
	// next is non-empty when the user edited the command and the confirm
	// loop should restart with it.
	next string
}

// explainAndConfirm fetches an explanation, shows it beneath the command,
// and runs the post-explanation confirmation.
func explainAndConfirm(provider llm.Provider, confirmer *term.Confirmer, editor *term.Editor, command string, cmdRows int, request string, mode commandMode) (explainResult, error) {
	explanation, err := fetchExplanation(provider, command)
	if err != nil {
		if errors.Is(err, llm.ErrCanceled) {
			if mode == modeSingle {
				return explainResult{outcome: outcome{kind: outcomeInterrupted}}, nil
			}
			return explainResult{outcome: outcome{kind: outcomeCanceled}}, nil
		}
		return explainResult{}, err
	}

	explRows := confirmer.DisplayExplanation(explanation)

	switch confirmer.ConfirmExecution(cmdRows, explRows) {
	case term.ConfirmYes:
		result, err := executeOrPrint(command)
		return explainResult{outcome: result}, err
	case term.ConfirmCancel:
		return explainResult{outcome: declined(request, mode)}, nil
	case term.ConfirmInterrupted:
		return explainResult{outcome: outcome{kind: outcomeInterrupted}}, nil
	case term.ConfirmEdit:
		edited, editOutcome := editor.Run(command)
		switch editOutcome {
		case term.EditAccepted:
			return explainResult{next: edited}, nil
		case term.EditInterrupted:
			return explainResult{outcome: outcome{kind: outcomeInterrupted}}, nil
		}
	}
	return explainResult{outcome: outcome{kind: outcomeDone}}, nil
}

// fetchExplanation asks the provider to describe the command.
func fetchExplanation(provider llm.Provider, command string) (string, error) {
	styles := term.NewStyles(os.Stderr)
	fmt.Fprint(os.Stderr, styles.Dim.Render("explaining..."))

	query := prompt.BuildExplainPrompt(command, config.EffectiveExplainPrompt())
	result, err := assist.Generate(context.Background(), provider, query)
	term.ClearLine(os.Stderr)
	if err != nil {
		return "", err
	}
	return prompt.CleanResponse(result), nil
}

// executeOrPrint runs the command when stdout is a terminal, and prints it
// to stdout otherwise so the shell wrapper can eval it in the calling shell.
var executeOrPrint = func(command string) (outcome, error) {
	interactive := os.Getenv("NLSH_FORCE_INTERACTIVE") != "" || isatty.IsTerminal(os.Stdout.Fd())
	if !interactive {
		fmt.Fprintln(os.Stdout, command)
		return outcome{kind: outcomeDone}, nil
	}

	code, err := shell.Execute(command)
	if err != nil {
		return outcome{}, err
	}
	return outcome{kind: outcomeExecuted, exitCode: code}, nil
}

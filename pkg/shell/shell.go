// Package shell executes confirmed commands. cd, export, and unset are
// handled in-process so they affect the running REPL; everything else goes
// through sh -c with inherited stdio.
package shell

import (
	"os"
	"os/exec"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/nlsh-dev/nlsh/pkg/logging"
)

// Execute runs command and returns its exit code. Environment variables and
// a leading tilde are expanded before dispatch. A nil error with a non-zero
// code means the command ran and failed; the caller propagates the code.
func Execute(command string) (int, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return 0, nil
	}

	expanded := expand(trimmed)

	// Multi-line commands always go to the shell; builtin parsing is
	// line-oriented.
	if !strings.Contains(expanded, "\n") {
		parts := strings.Fields(expanded)
		if len(parts) == 0 {
			return 0, nil
		}
		switch parts[0] {
		case "cd":
			return 0, changeDir(parts[1:])
		case "export":
			return 0, exportVars(parts[1:])
		case "unset":
			return 0, unsetVars(parts[1:])
		}
	}

	logging.NewComponentLogger("shell").Debug("executing command", "command", expanded)

	cmd := exec.Command("sh", "-c", expanded)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 1, err
	}
	return 0, nil
}

// expand substitutes a leading tilde and $VAR references.
func expand(command string) string {
	if expanded, err := homedir.Expand(command); err == nil {
		command = expanded
	}
	return os.Expand(command, func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		// Unknown variables are left for the shell to resolve.
		return "$" + name
	})
}

// changeDir implements cd: no argument means home.
func changeDir(args []string) error {
	var target string
	if len(args) == 0 {
		home, err := homedir.Dir()
		if err != nil {
			home = "/"
		}
		target = home
	} else {
		target = args[0]
	}
	return os.Chdir(target)
}

// exportVars implements export KEY=VALUE...; entries without '=' are ignored.
func exportVars(args []string) error {
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func unsetVars(args []string) error {
	for _, arg := range args {
		if err := os.Unsetenv(arg); err != nil {
			return err
		}
	}
	return nil
}

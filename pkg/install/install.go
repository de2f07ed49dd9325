package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nlsh-dev/nlsh/pkg/logging"
)

const (
	integrationMarker  = "# nlsh shell integration"
	completionMarker   = "# nlsh autocomplete"
	bashFunctionSig    = "nlsh()"
	bashCompletionPath = ".local/share/bash-completion/completions/nlsh"
	zshCompletionPath  = ".local/share/zsh/site-functions/_nlsh"
	fishFunctionPath   = ".config/fish/functions/nlsh.fish"
	fishCompletionPath = ".config/fish/completions/nlsh.fish"
)

// homeDir is swapped in tests.
var homeDir = os.UserHomeDir

// AutoSetup repairs drifted integrations and installs missing ones for every
// shell whose config exists. It returns true when anything new was added, so
// the CLI can tell the user to reload their shell.
func AutoSetup() (bool, error) {
	if err := verifyAndFix(); err != nil {
		return false, err
	}
	bashAdded, err := setupBash()
	if err != nil {
		return false, err
	}
	fishAdded, err := setupFish()
	if err != nil {
		return false, err
	}
	completionsAdded, err := setupCompletions()
	if err != nil {
		return false, err
	}
	return bashAdded || fishAdded || completionsAdded, nil
}

// verifyAndFix rewrites any installed artifact whose content no longer
// matches the current release.
func verifyAndFix() error {
	if err := verifyBashFunction(); err != nil {
		return err
	}
	if err := verifyFishFunction(); err != nil {
		return err
	}
	for _, c := range completionFiles() {
		if err := verifyCompletionFile(c.path, c.content); err != nil {
			return err
		}
	}
	return nil
}

type completionFile struct {
	path    string
	content string
	// gate is a path that must exist before the completion is installed,
	// e.g. .zshrc for the zsh completion. Empty means no gate.
	gate string
}

func completionFiles() []completionFile {
	return []completionFile{
		{path: bashCompletionPath, content: "# nlsh bash autocomplete\n" + BashCompletion + "\n"},
		{path: zshCompletionPath, content: "# nlsh zsh autocomplete\n" + ZshCompletion + "\n", gate: ".zshrc"},
		{path: fishCompletionPath, content: FishCompletion + "\n", gate: ".config/fish"},
	}
}

func verifyBashFunction() error {
	home, err := homeDir()
	if err != nil {
		return err
	}
	bashrc := filepath.Join(home, ".bashrc")
	content, err := os.ReadFile(bashrc)
	if err != nil {
		return nil
	}
	text := string(content)
	if !strings.Contains(text, bashFunctionSig) {
		return nil
	}
	if strings.Contains(text, BashFunction) {
		return nil
	}
	logging.Debug("bash integration drifted, reinstalling")
	if _, err := RemoveBash(); err != nil {
		return err
	}
	_, err = setupBash()
	return err
}

func verifyFishFunction() error {
	home, err := homeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, fishFunctionPath)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if strings.Contains(string(content), FishFunction) {
		return nil
	}
	logging.Debug("fish integration drifted, reinstalling")
	if err := os.Remove(path); err != nil {
		return err
	}
	_, err = setupFish()
	return err
}

func verifyCompletionFile(relPath, expected string) error {
	home, err := homeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, relPath)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if strings.Contains(string(content), strings.TrimSpace(expected)) {
		return nil
	}
	return os.WriteFile(path, []byte(expected), 0644)
}

// setupBash appends the wrapper function to an existing ~/.bashrc.
func setupBash() (bool, error) {
	home, err := homeDir()
	if err != nil {
		return false, err
	}
	bashrc := filepath.Join(home, ".bashrc")
	content, err := os.ReadFile(bashrc)
	if err != nil {
		// No .bashrc, not a bash user.
		return false, nil
	}
	if strings.Contains(string(content), bashFunctionSig) {
		return false, nil
	}

	f, err := os.OpenFile(bashrc, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	if _, err := f.WriteString("\n" + integrationMarker + "\n" + BashFunction + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// setupFish writes the wrapper into fish's functions directory when fish is
// in use.
func setupFish() (bool, error) {
	home, err := homeDir()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(filepath.Join(home, ".config/fish")); err != nil {
		return false, nil
	}
	path := filepath.Join(home, fishFunctionPath)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	content := integrationMarker + "\n" + FishFunction + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, err
	}
	return true, nil
}

func setupCompletions() (bool, error) {
	home, err := homeDir()
	if err != nil {
		return false, err
	}

	added := false
	for _, c := range completionFiles() {
		if c.gate != "" {
			if _, err := os.Stat(filepath.Join(home, c.gate)); err != nil {
				continue
			}
		}
		path := filepath.Join(home, c.path)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return added, err
		}
		if err := os.WriteFile(path, []byte(c.content), 0644); err != nil {
			return added, err
		}
		if c.path == zshCompletionPath {
			if err := addZshFpath(home); err != nil {
				return added, err
			}
		}
		added = true
	}
	return added, nil
}

// addZshFpath makes zsh pick up the completion directory.
func addZshFpath(home string) error {
	zshrc := filepath.Join(home, ".zshrc")
	content, err := os.ReadFile(zshrc)
	if err != nil {
		return nil
	}
	if strings.Contains(string(content), ".local/share/zsh/site-functions") {
		return nil
	}
	f, err := os.OpenFile(zshrc, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString("\n" + completionMarker + "\nfpath=(~/.local/share/zsh/site-functions $fpath)\nautoload -Uz compinit && compinit\n")
	return err
}

// RemoveBash strips the marked wrapper function from ~/.bashrc. It tracks
// brace depth from the function signature so user code after the block is
// untouched.
func RemoveBash() (bool, error) {
	home, err := homeDir()
	if err != nil {
		return false, err
	}
	bashrc := filepath.Join(home, ".bashrc")
	content, err := os.ReadFile(bashrc)
	if err != nil {
		return false, nil
	}
	if !strings.Contains(string(content), bashFunctionSig) {
		return false, nil
	}

	cleaned, found := removeMarkedBlock(string(content), integrationMarker, bashFunctionSig)
	if found {
		if err := os.WriteFile(bashrc, []byte(cleaned), 0644); err != nil {
			return false, err
		}
	}
	return found, nil
}

// removeMarkedBlock drops the marker line and the following function block,
// balancing braces from the line matching functionSig.
func removeMarkedBlock(content, marker, functionSig string) (string, bool) {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	var kept []string
	skip := false
	inFunction := false
	depth := 0
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == marker {
			skip = true
			found = true
			continue
		}
		if skip {
			if !inFunction && strings.Contains(line, functionSig) {
				inFunction = true
				depth += strings.Count(line, "{")
			} else if inFunction {
				depth += strings.Count(line, "{")
				depth -= strings.Count(line, "}")
				if depth == 0 {
					skip = false
					inFunction = false
					continue
				}
			}
			continue
		}
		kept = append(kept, line)
	}

	if found {
		for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
			kept = kept[:len(kept)-1]
		}
	}
	return strings.Join(kept, "\n") + "\n", found
}

// RemoveFish deletes the fish wrapper function file.
func RemoveFish() (bool, error) {
	home, err := homeDir()
	if err != nil {
		return false, err
	}
	path := filepath.Join(home, fishFunctionPath)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveCompletions deletes the completion files and the zshrc fpath block.
func RemoveCompletions() (bool, error) {
	home, err := homeDir()
	if err != nil {
		return false, err
	}
	removed := false
	for _, rel := range []string{bashCompletionPath, zshCompletionPath, fishCompletionPath} {
		if err := os.Remove(filepath.Join(home, rel)); err == nil {
			removed = true
		}
	}
	cleaned, err := removeZshFpath(home)
	if err != nil {
		return removed, err
	}
	return removed || cleaned, nil
}

func removeZshFpath(home string) (bool, error) {
	zshrc := filepath.Join(home, ".zshrc")
	content, err := os.ReadFile(zshrc)
	if err != nil {
		return false, nil
	}
	text := string(content)
	if !strings.Contains(text, completionMarker) {
		return false, nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	var kept []string
	skip := false
	for _, line := range lines {
		if strings.TrimSpace(line) == completionMarker {
			skip = true
			continue
		}
		if skip {
			if strings.Contains(line, ".local/share/zsh/site-functions") ||
				strings.Contains(line, "autoload -Uz compinit") {
				continue
			}
			skip = false
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return true, os.WriteFile(zshrc, []byte(strings.Join(kept, "\n")+"\n"), 0644)
}

// RemoveAll removes every installed integration artifact.
func RemoveAll() (bool, error) {
	bashRemoved, err := RemoveBash()
	if err != nil {
		return false, err
	}
	fishRemoved, err := RemoveFish()
	if err != nil {
		return bashRemoved, err
	}
	completionsRemoved, err := RemoveCompletions()
	if err != nil {
		return bashRemoved || fishRemoved, err
	}
	return bashRemoved || fishRemoved || completionsRemoved, nil
}

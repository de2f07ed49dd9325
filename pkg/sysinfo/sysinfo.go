// Package sysinfo gathers the environment context embedded into prompt
// templates.
package sysinfo

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// CurrentDirectory returns the working directory, or "/" when it cannot be
// determined.
func CurrentDirectory() string {
	dir, err := os.Getwd()
	if err != nil {
		return "/"
	}
	return dir
}

// HomeDirectory returns the user's home directory, or "~" as a placeholder
// the model understands.
func HomeDirectory() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "~"
	}
	return home
}

// OS describes the operating system. On Linux the distro and kernel version
// are included so the model picks the right package manager and flags.
func OS() string {
	switch runtime.GOOS {
	case "linux":
		return fmt.Sprintf("linux (%s; kernel: %s)", linuxDistro(), kernelVersion())
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	default:
		return "Unix"
	}
}

// Shell returns the basename of $SHELL, defaulting to sh.
func Shell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "sh"
	}
	parts := strings.Split(shell, "/")
	return parts[len(parts)-1]
}

// Username returns $USER or $USERNAME, defaulting to "user".
func Username() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}
	return "user"
}

// linuxDistro reads /etc/os-release for the distro name and version.
func linuxDistro() string {
	contents, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "linux"
	}

	var name, version string
	for _, line := range strings.Split(string(contents), "\n") {
		if value, ok := strings.CutPrefix(line, "NAME="); ok {
			name = strings.Trim(value, `"`)
		} else if value, ok := strings.CutPrefix(line, "VERSION_ID="); ok {
			version = strings.Trim(value, `"`)
		}
	}

	switch {
	case name != "" && version != "":
		return name + " " + version
	case name != "":
		return name
	default:
		return "linux"
	}
}

// kernelVersion asks uname, falling back to /proc.
func kernelVersion() string {
	if out, err := exec.Command("uname", "-r").Output(); err == nil {
		if v := strings.TrimSpace(string(out)); v != "" {
			return v
		}
	}
	if contents, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		if v := strings.TrimSpace(string(contents)); v != "" {
			return v
		}
	}
	return "unknown"
}

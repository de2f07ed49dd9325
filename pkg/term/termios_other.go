//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package term

import (
	"errors"
	"os"
)

type termiosState struct{}

var errNoTermios = errors.New("terminal attributes not supported on this platform")

func getTermios(fd int) (*termiosState, error) { return nil, errNoTermios }

func setTermios(fd int, s *termiosState) error { return errNoTermios }

func rawInputFlags(t *termiosState) {}

// HideControlEcho is a no-op where termios is unavailable.
func HideControlEcho(f *os.File) {}

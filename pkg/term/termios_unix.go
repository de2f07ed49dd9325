//go:build linux || darwin || freebsd || netbsd || openbsd

package term

import (
	"os"

	"golang.org/x/sys/unix"
)

type termiosState = unix.Termios

func getTermios(fd int) (*termiosState, error) {
	return unix.IoctlGetTermios(fd, ioctlGetTermios)
}

func setTermios(fd int, s *termiosState) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, s)
}

// rawInputFlags disables canonical input, echo and signal keys, and makes
// reads block for exactly one byte. Output flags stay as-is so "\n" still
// moves the cursor to column one.
func rawInputFlags(t *unix.Termios) {
	t.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}

// HideControlEcho clears ECHOCTL on f so an interrupt pressed outside raw
// mode (while a generation request is in flight) does not leave a stray
// "^C" on screen. Errors are ignored; this is cosmetic.
func HideControlEcho(f *os.File) {
	fd := int(f.Fd())
	t, err := getTermios(fd)
	if err != nil {
		return
	}
	t.Lflag &^= unix.ECHOCTL
	_ = setTermios(fd, t)
}

package term

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// RawMode holds the saved line-discipline settings of a terminal while raw
// byte-at-a-time input is active. Terminal attributes are process-wide, so
// at most one RawMode is live at a time; the confirm loop and the editor
// acquire it sequentially around each key read, never concurrently.
type RawMode struct {
	fd    int
	saved *termiosState
}

// EnterRawMode switches f into raw input mode: no line buffering, no echo,
// and no signal-generating keys, so Ctrl-C arrives as byte 0x03 instead of
// SIGINT. Output processing is left untouched. It fails when f is not a
// terminal (piped stdin); callers degrade to plain stream reads.
func EnterRawMode(f *os.File) (*RawMode, error) {
	fd := int(f.Fd())
	saved, err := getTermios(fd)
	if err != nil {
		return nil, err
	}
	raw := *saved
	rawInputFlags(&raw)
	if err := setTermios(fd, &raw); err != nil {
		return nil, err
	}
	return &RawMode{fd: fd, saved: saved}, nil
}

// Restore puts the terminal back into the mode saved at acquisition. It is
// a no-op on a nil receiver so it can be deferred unconditionally.
func (m *RawMode) Restore() {
	if m == nil {
		return
	}
	_ = setTermios(m.fd, m.saved)
}

// ReadKey decodes one key press from f, wrapping the read in raw mode when
// f is a live terminal. The saved attributes are restored on every exit
// path, including a panic inside the decode. When raw mode is unavailable
// the byte stream is decoded as-is, which is exactly what the piped test
// harness relies on.
func ReadKey(f *os.File) KeyEvent {
	if m, err := EnterRawMode(f); err == nil {
		defer m.Restore()
	}
	return DecodeKey(f)
}

// readKeyFrom reads a key from an arbitrary reader, entering raw mode only
// when the reader is an *os.File backed by a terminal.
func readKeyFrom(r io.Reader) KeyEvent {
	if f, ok := r.(*os.File); ok {
		return ReadKey(f)
	}
	return DecodeKey(r)
}

// Interactive reports whether confirmation prompts and the editor should
// read key input at all. NLSH_FORCE_INTERACTIVE overrides TTY detection so
// piped bytes still exercise the interactive paths in tests.
func Interactive() bool {
	if os.Getenv("NLSH_FORCE_INTERACTIVE") != "" {
		return true
	}
	return isatty.IsTerminal(os.Stdin.Fd())
}

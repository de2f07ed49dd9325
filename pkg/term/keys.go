// Package term implements the interactive confirmation and inline-editing
// surface: decoding raw key presses, accounting for the visual rows a piece
// of output occupies, and erasing exactly what was printed. It deliberately
// avoids full TTY libraries; everything is byte-level so the same code paths
// run against a raw-mode terminal or a plain piped stream.
package term

import "io"

// Key identifies one decoded key press.
type Key int

const (
	KeyChar Key = iota
	KeyBackspace
	KeyDelete
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyHome
	KeyEnd
	KeyEnter
	KeyInterrupt
	KeyEndOfInput
	KeyUnrecognized
)

// KeyEvent is one logical key press read from the input stream. Char is set
// only when Key == KeyChar.
type KeyEvent struct {
	Key  Key
	Char rune
}

// DecodeKey reads one logical key press from r: a single byte, or an escape
// sequence of 2-4 bytes. EOF anywhere, including mid-sequence, yields
// KeyEndOfInput; read errors are treated the same so callers fail safe
// instead of spinning.
func DecodeKey(r io.Reader) KeyEvent {
	b, ok := readByte(r)
	if !ok {
		return KeyEvent{Key: KeyEndOfInput}
	}
	switch {
	case b == '\n' || b == '\r':
		return KeyEvent{Key: KeyEnter}
	case b == 0x03:
		return KeyEvent{Key: KeyInterrupt}
	case b == 0x7f || b == 0x08:
		return KeyEvent{Key: KeyBackspace}
	case b == 0x1b:
		return decodeEscape(r)
	case b >= 0x20 && b <= 0x7e:
		return KeyEvent{Key: KeyChar, Char: rune(b)}
	default:
		return KeyEvent{Key: KeyUnrecognized}
	}
}

// decodeEscape consumes the remainder of a CSI sequence after the 0x1b
// prefix. Only the handful of sequences the editor cares about are
// recognized; everything else is reported as KeyUnrecognized with the
// sequence consumed.
func decodeEscape(r io.Reader) KeyEvent {
	b, ok := readByte(r)
	if !ok {
		return KeyEvent{Key: KeyEndOfInput}
	}
	if b != '[' {
		return KeyEvent{Key: KeyUnrecognized}
	}
	b, ok = readByte(r)
	if !ok {
		return KeyEvent{Key: KeyEndOfInput}
	}
	switch b {
	case 'A':
		return KeyEvent{Key: KeyArrowUp}
	case 'C':
		return KeyEvent{Key: KeyArrowRight}
	case 'D':
		return KeyEvent{Key: KeyArrowLeft}
	case 'H':
		return KeyEvent{Key: KeyHome}
	case 'F':
		return KeyEvent{Key: KeyEnd}
	case '1':
		readByte(r) // trailing '~'
		return KeyEvent{Key: KeyHome}
	case '3':
		readByte(r) // trailing '~'
		return KeyEvent{Key: KeyDelete}
	case '4':
		readByte(r) // trailing '~'
		return KeyEvent{Key: KeyEnd}
	default:
		return KeyEvent{Key: KeyUnrecognized}
	}
}

func readByte(r io.Reader) (byte, bool) {
	var buf [1]byte
	n, _ := r.Read(buf[:])
	if n > 0 {
		return buf[0], true
	}
	return 0, false
}

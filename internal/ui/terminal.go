package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	clearScreen    = "\x1b[2J\x1b[H"
)

// Terminal wraps the controlling terminal: raw mode, the alternate screen,
// and initial geometry. Close puts the terminal back exactly as it was
// found, even on a panicking exit path.
type Terminal struct {
	fd       int
	oldState *term.State
	out      io.Writer
}

// OpenTerminal places stdin into raw mode and stdout into the alternate
// screen, returning the geometry to size the initial PTYs with.
func OpenTerminal(in *os.File, out io.Writer) (*Terminal, int, int, error) {
	fd := int(in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to set raw mode: %w", err)
	}

	cols, rows, err := term.GetSize(fd)
	if err != nil {
		_ = term.Restore(fd, oldState)
		return nil, 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}

	fmt.Fprint(out, enterAltScreen+hideCursor)

	return &Terminal{fd: fd, oldState: oldState, out: out}, cols, rows, nil
}

// Draw clears and redraws the frame.
func (t *Terminal) Draw(frame string) {
	fmt.Fprint(t.out, clearScreen+frame)
}

// Close restores the alternate screen and cooked mode.
func (t *Terminal) Close() error {
	fmt.Fprint(t.out, showCursor+exitAltScreen)
	return term.Restore(t.fd, t.oldState)
}

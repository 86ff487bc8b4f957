// Package vt wraps github.com/vito/midterm for the emulated screen's
// cursor, resize, and scrollback behavior, and layers a thin
// line-boundary scanner on top so the process-instance reader loop can
// report which output lines were completed during a write — the exact
// boundary the status analyzer classifies on — without midterm needing
// to expose that notion itself.
package vt

import (
	"io"
	"sync"

	"github.com/vito/midterm"
)

// Line is one physical row of the screen's scrollback history.
type Line struct {
	Text string
}

// Screen is a single-writer, many-reader emulated terminal. The writer is
// always the owning process instance's reader goroutine; readers are the
// foreground render path and History-mode snapshots, both taking the lock
// only for the duration of a copy.
type Screen struct {
	mu sync.Mutex

	term *midterm.Terminal
	rows int

	// scrollback holds rows midterm has scrolled off the top of the live
	// screen, oldest first; physRow0 is the absolute row index of the
	// live screen's topmost row, i.e. len(scrollback).
	scrollback []string
	physRow0   int

	scanner scanner
}

// NewScreen creates a screen of the given geometry. forwardResponses, if
// non-nil, receives the terminal's replies to the child's device-status
// and cursor-position queries (DSR/DA), so well-behaved full-screen
// children keep working even though mintaka — not the child — owns the
// real controlling terminal.
func NewScreen(cols, rows int, forwardResponses io.Writer) *Screen {
	s := &Screen{rows: rows}
	s.term = midterm.NewTerminal(rows, cols)
	s.term.ForwardResponses = forwardResponses
	s.wireScrollback(s)
	return s
}

func (s *Screen) wireScrollback(into *Screen) {
	s.term.OnScrollback(func(line midterm.Line) {
		into.scrollback = append(into.scrollback, line.Display())
		into.physRow0++
	})
}

// Resize changes the viewport geometry. Existing scrollback is preserved;
// wrapping of already-written rows is not retroactively reflowed, matching
// the original's "preserving DPI" resize note rather than a full reflow.
func (s *Screen) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.term.Resize(rows, cols)
}

// Write feeds raw child output through the line-boundary scanner for
// classification and through midterm for screen emulation, returning the
// lines the scanner completed (bounded by LF, CR, or a full-reset
// escape) during this call, in the order they completed.
func (s *Screen) Write(p []byte) (completed []string, n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed = s.scanner.feed(p)
	n, err = s.term.Write(p)
	return completed, n, err
}

// Lines returns the lines visible in the physical row range
// [from, from+count), spanning scrollback and the live screen as one
// addressable range. Rows outside that range come back blank. Used both
// for live rendering (PhysRow0()..+Rows()) and for snapshot rendering.
func (s *Screen) Lines(from, count int) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked(from, count)
}

func (s *Screen) linesLocked(from, count int) []Line {
	live := s.term.Lines()

	out := make([]Line, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Line{Text: s.rowTextLocked(from+i, live)})
	}
	return out
}

func (s *Screen) rowTextLocked(idx int, live []midterm.Line) string {
	if idx < 0 {
		return ""
	}
	if idx < s.physRow0 {
		if idx >= len(s.scrollback) {
			return ""
		}
		return s.scrollback[idx]
	}
	row := idx - s.physRow0
	if row < 0 || row >= len(live) {
		return ""
	}
	return live[row].Display()
}

// PhysRow0 returns the current physical row base: the absolute row index
// of the topmost row in the live viewport.
func (s *Screen) PhysRow0() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.physRow0
}

// CursorPosition returns the emulated cursor's column and absolute
// physical row, valid only while the owning instance is live.
func (s *Screen) CursorPosition() (col, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.term.Cursor()
	return cur.X, s.physRow0 + cur.Y
}

// Clone deep-copies the screen's full history and geometry for History-mode
// snapshots; the clone shares no state with the live screen.
func (s *Screen) Clone() *Screen {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := &Screen{
		rows:     s.rows,
		physRow0: s.physRow0,
		term:     s.term.Clone(),
	}
	clone.scrollback = make([]string, len(s.scrollback))
	copy(clone.scrollback, s.scrollback)
	clone.wireScrollback(clone)
	return clone
}

// Rows returns the screen's configured viewport row count.
func (s *Screen) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

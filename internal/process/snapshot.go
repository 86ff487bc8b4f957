package process

import "github.com/mwilliamson/mintaka/internal/vt"

// ScrollDirection is the direction a History-mode scroll command moves the
// viewport.
type ScrollDirection int

const (
	ScrollPageUp ScrollDirection = iota
	ScrollPageDown
	ScrollLineUp
	ScrollLineDown
)

// Snapshot is a frozen view of one process's screen, captured when the
// user enters History mode. It is immutable except for its line_index,
// which scrolling adjusts.
type Snapshot struct {
	lineIndex int
	screen    *vt.Screen
}

// EmptySnapshot is the zero-value snapshot used before History mode has
// ever captured anything.
func EmptySnapshot() Snapshot {
	return Snapshot{}
}

func newSnapshot(lineIndex int, screen *vt.Screen) Snapshot {
	return Snapshot{lineIndex: lineIndex, screen: screen}
}

// IsEmpty reports whether this snapshot has no captured screen.
func (s Snapshot) IsEmpty() bool {
	return s.screen == nil
}

// Lines returns the lines visible starting at the snapshot's current
// line_index, covering one viewport's worth of physical rows.
func (s Snapshot) Lines() []vt.Line {
	if s.screen == nil {
		return nil
	}
	return s.screen.Lines(s.lineIndex, s.screen.Rows())
}

// Scroll adjusts line_index by a page (half the physical rows) for
// PageUp/PageDown, or by one row for LineUp/LineDown, clamped to
// [0, physical-row base].
func (s *Snapshot) Scroll(direction ScrollDirection) {
	if s.screen == nil {
		return
	}
	base := s.screen.PhysRow0()
	page := s.screen.Rows() / 2

	switch direction {
	case ScrollPageUp:
		s.lineIndex = clampSub(s.lineIndex, page)
	case ScrollPageDown:
		s.lineIndex = clampAdd(s.lineIndex, page, base)
	case ScrollLineUp:
		s.lineIndex = clampSub(s.lineIndex, 1)
	case ScrollLineDown:
		s.lineIndex = clampAdd(s.lineIndex, 1, base)
	}
}

// LineIndex exposes the current scroll position, used by tests to verify
// the clamping invariant.
func (s Snapshot) LineIndex() int {
	return s.lineIndex
}

func clampSub(value, delta int) int {
	result := value - delta
	if result < 0 {
		return 0
	}
	return result
}

func clampAdd(value, delta, max int) int {
	result := value + delta
	if result > max {
		return max
	}
	return result
}

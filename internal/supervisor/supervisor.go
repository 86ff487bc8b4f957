// Package supervisor owns the Processes vector, the focus/mode state
// machine, and the current History snapshot, and exposes the full command
// surface the UI Bridge drives.
package supervisor

import (
	"github.com/mwilliamson/mintaka/internal/dependency"
	"github.com/mwilliamson/mintaka/internal/process"
	"github.com/mwilliamson/mintaka/internal/vt"
	"github.com/sirupsen/logrus"
)

// Mode is the UI's current interaction mode.
type Mode int

const (
	ModeMain Mode = iota
	ModeForwardInput
	ModeHistory
)

// ScreenKind distinguishes a normal rendered viewport from an error pane.
type ScreenKind int

const (
	ScreenLines ScreenKind = iota
	ScreenError
)

// Cursor is an emulated cursor position, present only in ModeForwardInput.
type Cursor struct {
	Col, Row int
}

// ScreenContents is what the UI renders for the current focused process
// and mode.
type ScreenContents struct {
	Kind     ScreenKind
	Lines    []vt.Line
	Cursor   *Cursor
	ErrorMsg string
}

// ProcessSummary is the name+status pair the UI lists per process index.
type ProcessSummary struct {
	Name   string
	Status process.Status
}

// Supervisor is the single owner of every Process for the run's lifetime.
type Supervisor struct {
	processes []*process.Process
	names     []string

	tracker *dependency.Tracker

	focusIndex       int
	mode             Mode
	snapshot         process.Snapshot
	autofocusEnabled bool

	ptySize process.Size

	log *logrus.Entry
}

// ProcessSpec is what the config loader hands the Supervisor to build one
// process: its Config plus the upstream name it depends on, if any.
type ProcessSpec struct {
	Config process.Config
	After  string
}

// New builds a Supervisor from the ordered process specs, resolving the
// dependency table once at startup. wake is passed through to every
// Process's reader goroutines.
func New(specs []ProcessSpec, baseDir string, ptySize process.Size, wake func(), log *logrus.Entry) *Supervisor {
	s := &Supervisor{
		autofocusEnabled: true,
		ptySize:          ptySize,
		log:              log,
	}

	names := make([]string, len(specs))
	afters := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Config.DisplayName()
		afters[i] = spec.After
		s.processes = append(s.processes, process.NewProcess(spec.Config, ptySize, baseDir, wake))
	}
	s.names = names

	tracker, unresolved := dependency.Build(names, afters)
	s.tracker = tracker
	for _, u := range unresolved {
		if s.log != nil {
			s.log.WithFields(logrus.Fields{
				"process":  names[u.DownstreamIndex],
				"upstream": u.UpstreamName,
			}).Warn("after references an unknown process; ignoring")
		}
	}

	return s
}

// DoWork is the foreground's core tick: drain statuses, run the dependency
// tracker, start pending restarts, and maintain autofocus.
func (s *Supervisor) DoWork() {
	for _, p := range s.processes {
		p.SynchronizeStatus()
	}

	actions := s.tracker.Tick(func(i int) process.Status {
		return s.processes[i].Status()
	})
	for _, action := range actions {
		target := s.processes[action.DownstreamIndex]
		switch action.Action {
		case dependency.Restart:
			target.Restart()
		case dependency.WaitForUpstream:
			target.MarkWaitingForUpstream()
		}
	}

	for _, p := range s.processes {
		p.DoWork()
	}

	if s.mode == ModeMain && s.autofocusEnabled {
		for i, p := range s.processes {
			if p.Status().IsFailure() {
				s.focusIndex = i
				break
			}
		}
	}
}

// ScreenContents renders the focused process according to the current
// mode.
func (s *Supervisor) ScreenContents() ScreenContents {
	focused := s.processes[s.focusIndex]

	if focused.Status().Equal(process.FailedToStartStatus()) {
		return ScreenContents{Kind: ScreenError, ErrorMsg: focused.SpawnErrorDetail()}
	}

	switch s.mode {
	case ModeForwardInput:
		lines := focused.Lines()
		var cursor *Cursor
		if col, row, ok := focused.CursorPosition(); ok {
			cursor = &Cursor{Col: col, Row: row}
		}
		return ScreenContents{Kind: ScreenLines, Lines: lines, Cursor: cursor}
	case ModeHistory:
		return ScreenContents{Kind: ScreenLines, Lines: s.snapshot.Lines()}
	default:
		return ScreenContents{Kind: ScreenLines, Lines: focused.Lines()}
	}
}

// Processes returns the name+status pair for every tracked process, in
// stable index order.
func (s *Supervisor) Processes() []ProcessSummary {
	out := make([]ProcessSummary, len(s.processes))
	for i, p := range s.processes {
		out[i] = ProcessSummary{Name: p.Name(), Status: p.Status()}
	}
	return out
}

// FocusedProcessIndex returns the currently focused process's index.
func (s *Supervisor) FocusedProcessIndex() int { return s.focusIndex }

// Mode returns the current interaction mode.
func (s *Supervisor) Mode() Mode { return s.mode }

// AutofocusEnabled reports whether autofocus is currently active.
func (s *Supervisor) AutofocusEnabled() bool { return s.autofocusEnabled }

// MoveFocusUp moves focus to the previous process, wrapping around,
// disables autofocus, and returns to Main mode (a manual focus move always
// lands in Main, whichever mode it was issued from).
func (s *Supervisor) MoveFocusUp() {
	s.manualFocusMove()
	n := len(s.processes)
	s.focusIndex = (s.focusIndex - 1 + n) % n
}

// MoveFocusDown moves focus to the next process, wrapping around, disables
// autofocus, and returns to Main mode.
func (s *Supervisor) MoveFocusDown() {
	s.manualFocusMove()
	n := len(s.processes)
	s.focusIndex = (s.focusIndex + 1) % n
}

func (s *Supervisor) manualFocusMove() {
	s.autofocusEnabled = false
	s.mode = ModeMain
	s.snapshot = process.EmptySnapshot()
}

// DisableAutofocus turns autofocus off without moving focus.
func (s *Supervisor) DisableAutofocus() { s.autofocusEnabled = false }

// ToggleAutofocus flips the autofocus flag.
func (s *Supervisor) ToggleAutofocus() { s.autofocusEnabled = !s.autofocusEnabled }

// RestartFocused restarts the currently focused process.
func (s *Supervisor) RestartFocused() {
	s.processes[s.focusIndex].Restart()
}

// ForwardInputToFocusedProcess enters ForwardInput mode.
func (s *Supervisor) ForwardInputToFocusedProcess() {
	s.mode = ModeForwardInput
}

// EnterMainMode returns to Main mode from any other mode, dropping any
// History snapshot.
func (s *Supervisor) EnterMainMode() {
	s.mode = ModeMain
	s.snapshot = process.EmptySnapshot()
}

// Scroll enters History mode (capturing a snapshot if one is not already
// held) and adjusts the snapshot's viewport.
func (s *Supervisor) Scroll(direction process.ScrollDirection) {
	if s.mode != ModeHistory {
		s.mode = ModeHistory
		s.snapshot = s.processes[s.focusIndex].Snapshot()
	}
	s.snapshot.Scroll(direction)
}

// LeaveHistory returns to Main mode and drops the snapshot.
func (s *Supervisor) LeaveHistory() {
	s.mode = ModeMain
	s.snapshot = process.EmptySnapshot()
}

// SendInput delegates to the focused process.
func (s *Supervisor) SendInput(data []byte) {
	s.processes[s.focusIndex].SendInput(data)
}

// StopAll transitions every process toward Stopped.
func (s *Supervisor) StopAll() {
	for _, p := range s.processes {
		p.Stop()
	}
}

// IsStopped reports whether every process has settled into Stopped.
func (s *Supervisor) IsStopped() bool {
	for _, p := range s.processes {
		if !p.IsStopped() {
			return false
		}
	}
	return true
}

// Resize applies a new PTY size to every process, only if it actually
// changed.
func (s *Supervisor) Resize(cols, rows int) {
	size := process.Size{Cols: cols, Rows: rows}
	if size == s.ptySize {
		return
	}
	s.ptySize = size
	for _, p := range s.processes {
		p.Resize(size)
	}
}

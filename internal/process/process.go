package process

import "github.com/mwilliamson/mintaka/internal/vt"

// statusChanBuffer bounds the per-instance status channel; the foreground
// only ever needs the latest status on a given tick, so a small buffer
// plus the reader's non-blocking send is enough to never stall a reader
// goroutine on a slow-draining foreground.
const statusChanBuffer = 8

type stateKind int

const (
	stateNotStarted stateKind = iota
	stateStopped
	stateWaitingForUpstream
	statePendingRestart
	stateFailedToStart
	stateRunning
	stateTerminating
)

// Process wraps one ProcessInstanceState and mediates every user-initiated
// transition. It owns at most one live Instance at a time.
type Process struct {
	config  Config
	baseDir string
	wake    func()

	instanceIDs instanceIDGen

	kind stateKind

	instance *Instance
	status   Status
	statusRx chan Status

	spawnErr *SpawnError
	nextKind stateKind // valid only when kind == stateTerminating

	ptySize Size
}

// NewProcess constructs a Process in its initial state: PendingRestart if
// the config autostarts, else NotStarted.
func NewProcess(cfg Config, ptySize Size, baseDir string, wake func()) *Process {
	p := &Process{config: cfg, baseDir: baseDir, wake: wake, ptySize: ptySize}
	if cfg.Autostart {
		p.kind = statePendingRestart
	} else {
		p.kind = stateNotStarted
	}
	return p
}

// Name returns the process's display name.
func (p *Process) Name() string { return p.config.DisplayName() }

// Start allocates a fresh Instance and transitions into Running on success
// or FailedToStart on failure.
func (p *Process) Start() {
	id := p.instanceIDs.generate()
	statusRx := make(chan Status, statusChanBuffer)

	inst, err := StartInstance(p.config, p.ptySize, id, p.baseDir, statusRx, p.wake)
	if err != nil {
		p.kind = stateFailedToStart
		p.spawnErr = err
		p.instance = nil
		p.statusRx = nil
		return
	}

	p.kind = stateRunning
	p.instance = inst
	p.statusRx = statusRx
	p.status = RunningStatus()
}

// Restart transitions to PendingRestart, routing through Terminating if an
// instance is currently running so the exit code is always observed
// before the new instance is started.
func (p *Process) Restart() {
	p.transitionTo(statePendingRestart)
}

// Stop transitions to Stopped; a stopped process is never auto-restarted
// by DoWork until an explicit Restart.
func (p *Process) Stop() {
	p.transitionTo(stateStopped)
}

// MarkWaitingForUpstream transitions to WaitingForUpstream, used by the
// Dependency Tracker when an upstream process is no longer successful.
func (p *Process) MarkWaitingForUpstream() {
	p.transitionTo(stateWaitingForUpstream)
}

// transitionTo is the shared machinery behind Restart/Stop/
// MarkWaitingForUpstream: if an instance is currently live (its Exited
// status not yet observed), kill it and hold the target state as
// next_state until the exit is observed; otherwise transition immediately.
func (p *Process) transitionTo(target stateKind) {
	if p.kind == stateRunning {
		if _, exited := p.status.ExitCode(); !exited {
			p.instance.Kill()
			p.kind = stateTerminating
			p.nextKind = target
			return
		}
	}
	if p.kind == stateTerminating {
		p.nextKind = target
		return
	}
	p.kind = target
	p.instance = nil
	p.statusRx = nil
}

// SynchronizeStatus drains the status channel, keeping only the last
// status observed this tick (intermediate statuses within one tick are
// lost by design). When Terminating and the drained status is Exited, the
// held next_state is committed now.
func (p *Process) SynchronizeStatus() {
	if p.statusRx == nil {
		return
	}

	var last Status
	var got bool
drain:
	for {
		select {
		case s := <-p.statusRx:
			last = s
			got = true
		default:
			break drain
		}
	}
	if !got {
		return
	}

	p.status = last

	if p.kind == stateTerminating {
		if _, exited := last.ExitCode(); exited {
			p.kind = p.nextKind
			p.instance = nil
			p.statusRx = nil
		}
	}
}

// DoWork invokes Start if the process is currently PendingRestart.
func (p *Process) DoWork() {
	if p.kind == statePendingRestart {
		p.Start()
	}
}

// Status collapses the internal state into the externally observable
// Status, rendering Terminating as a transitional chip depending on its
// held next_state.
func (p *Process) Status() Status {
	switch p.kind {
	case stateNotStarted:
		return NotStartedStatus()
	case stateStopped:
		return StoppedStatus()
	case stateWaitingForUpstream:
		return WaitingForUpstreamStatus()
	case statePendingRestart:
		return RunningStatus()
	case stateFailedToStart:
		return FailedToStartStatus()
	case stateRunning:
		return p.status
	case stateTerminating:
		switch p.nextKind {
		case statePendingRestart:
			return TerminatingStatus("Restarting…")
		case stateStopped:
			return TerminatingStatus("Stopping…")
		default:
			return TerminatingStatus("Terminating…")
		}
	default:
		return NotStartedStatus()
	}
}

// IsStopped reports whether this process has settled into Stopped.
func (p *Process) IsStopped() bool {
	return p.kind == stateStopped
}

// SpawnErrorDetail returns the diagnostic message for a FailedToStart
// process, or empty if not in that state.
func (p *Process) SpawnErrorDetail() string {
	if p.kind != stateFailedToStart || p.spawnErr == nil {
		return ""
	}
	return p.spawnErr.Error()
}

// Lines forwards to the live instance, or returns nil if none exists.
func (p *Process) Lines() []vt.Line {
	if p.instance == nil {
		return nil
	}
	return p.instance.Lines()
}

// CursorPosition forwards to the live instance.
func (p *Process) CursorPosition() (col, row int, ok bool) {
	if p.instance == nil {
		return 0, 0, false
	}
	c, r := p.instance.CursorPosition()
	return c, r, true
}

// SendInput forwards to the live instance; a no-op if none exists.
func (p *Process) SendInput(data []byte) {
	if p.instance == nil {
		return
	}
	_ = p.instance.SendInput(data)
}

// Snapshot forwards to the live instance, or an empty snapshot if none.
func (p *Process) Snapshot() Snapshot {
	if p.instance == nil {
		return EmptySnapshot()
	}
	return p.instance.Snapshot()
}

// Resize resizes the live instance's PTY and screen, if any, and records
// the new size for the next Start.
func (p *Process) Resize(size Size) {
	p.ptySize = size
	if p.instance != nil {
		_ = p.instance.Resize(size)
	}
}

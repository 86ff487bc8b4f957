package process

import (
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/creack/pty"
	"github.com/mwilliamson/mintaka/internal/statusanalyzer"
	"github.com/mwilliamson/mintaka/internal/vt"
)

// Size is a PTY/viewport geometry in character cells.
type Size struct {
	Cols, Rows int
}

// killGraceWindow is how long Kill waits after SIGTERM before escalating to
// SIGKILL on POSIX platforms.
const killGraceWindow = 5 * time.Second

// Instance owns one spawned child attached to its own PTY: the PTY master,
// the child's kill handle, the emulated screen shared with its reader
// goroutine, and the has-terminated flag the reader goroutine sets on EOF.
type Instance struct {
	id     InstanceID
	cmd    *exec.Cmd
	master *os.File
	screen *vt.Screen

	hasTerminated atomic.Bool

	successGen successIDGen
	analyzer   statusanalyzer.Analyzer

	statusTx chan<- Status
	wake     func()
}

// StartInstance opens a PTY of the given size, resolves the working
// directory against baseDir, spawns the child, and starts its reader
// goroutine. statusTx is the instance's single sender; wake is called after
// every screen update so the UI's blocking input poll can return promptly.
func StartInstance(cfg Config, size Size, id InstanceID, baseDir string, statusTx chan<- Status, wake func()) (*Instance, *SpawnError) {
	if len(cfg.Command) == 0 {
		return nil, errEmptyCommand
	}

	dir, err := resolveWorkingDirectory(baseDir, cfg.WorkingDirectory)
	if err != nil {
		return nil, newSpawnError("failed to resolve working directory", err)
	}

	cmd := exec.Command(cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = dir

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(size.Rows), Cols: uint16(size.Cols)})
	if err != nil {
		return nil, newSpawnError("failed to spawn child process", err)
	}

	inst := &Instance{
		id:         id,
		cmd:        cmd,
		master:     master,
		screen:     vt.NewScreen(size.Cols, size.Rows, master),
		successGen: newSuccessIDGen(id),
		analyzer:   cfg.analyzer,
		statusTx:   statusTx,
		wake:       wake,
	}

	go inst.readLoop()

	return inst, nil
}

// readLoop is the reader goroutine contract: read up to 256 bytes at a
// time, apply them to the emulated screen (which also yields the lines
// completed by this chunk), classify each completed line, and send any
// resulting status change. On EOF, wait for the child's exit code, mark
// termination, and report Exited.
func (inst *Instance) readLoop() {
	buf := make([]byte, 256)
	// Process.Start records Running for a fresh instance.
	lastSent := RunningStatus()
	for {
		n, err := inst.master.Read(buf)
		if n > 0 {
			completedLines, _, _ := inst.screen.Write(buf[:n])
			for _, line := range completedLines {
				if status, ok := inst.classify(line); ok && !status.Equal(lastSent) {
					inst.sendStatus(status)
					lastSent = status
				}
			}
			inst.wake()
		}
		if err != nil {
			break
		}
	}

	exitCode := 1
	if err := inst.cmd.Wait(); err == nil {
		if inst.cmd.ProcessState != nil {
			exitCode = inst.cmd.ProcessState.ExitCode()
		}
	} else if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}

	inst.hasTerminated.Store(true)
	inst.sendStatus(ExitedStatus(exitCode))
	inst.wake()
}

func (inst *Instance) classify(line string) (Status, bool) {
	result := inst.analyzer.AnalyzeLine(line)
	if !result.Classified {
		return Status{}, false
	}
	switch result.Verdict {
	case statusanalyzer.Success:
		return SuccessStatus(inst.successGen.generate()), true
	case statusanalyzer.Errors:
		return ErrorsStatus(result.ErrorCount), true
	default:
		return RunningStatus(), true
	}
}

// sendStatus is a non-blocking send: a status update is dropped only if
// the channel's buffer is full or the receiver has stopped draining, which
// is acceptable since the foreground only ever cares about the latest
// status on its next tick.
func (inst *Instance) sendStatus(s Status) {
	select {
	case inst.statusTx <- s:
	default:
	}
}

// HasTerminated reports whether the reader goroutine has observed EOF.
func (inst *Instance) HasTerminated() bool {
	return inst.hasTerminated.Load()
}

// Resize resizes the PTY master and the emulated screen to match.
func (inst *Instance) Resize(size Size) error {
	inst.screen.Resize(size.Cols, size.Rows)
	return pty.Setsize(inst.master, &pty.Winsize{Rows: uint16(size.Rows), Cols: uint16(size.Cols)})
}

// Lines returns a snapshot of the full emulated screen's physical-row
// range currently within the viewport.
func (inst *Instance) Lines() []vt.Line {
	return inst.screen.Lines(inst.screen.PhysRow0(), inst.screen.Rows())
}

// CursorPosition returns the emulated cursor, valid only while the instance
// is live.
func (inst *Instance) CursorPosition() (col, row int) {
	return inst.screen.CursorPosition()
}

// SendInput writes the given bytes (already encoded by the UI layer into
// whatever the terminal-to-application protocol requires) to the PTY
// master.
func (inst *Instance) SendInput(data []byte) error {
	_, err := inst.master.Write(data)
	return err
}

// Snapshot deep-copies the screen plus the current physical-row base for
// History mode.
func (inst *Instance) Snapshot() Snapshot {
	return newSnapshot(inst.screen.PhysRow0(), inst.screen.Clone())
}

// Kill is a best-effort terminate: send SIGTERM, then escalate to SIGKILL
// after killGraceWindow unless termination was already observed. A kill on
// an already-terminated instance is a no-op. The caller does not block;
// termination is observed later through the status channel.
func (inst *Instance) Kill() {
	if inst.hasTerminated.Load() {
		return
	}
	sendGracefulSignal(inst.cmd)
	go func() {
		time.Sleep(killGraceWindow)
		if !inst.hasTerminated.Load() {
			sendForcefulSignal(inst.cmd)
		}
	}()
}

//go:build unix

package process

import (
	"os/exec"

	"golang.org/x/sys/unix"
)

// sendGracefulSignal sends SIGTERM, matching the spec's POSIX graceful-kill
// step.
func sendGracefulSignal(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = unix.Kill(cmd.Process.Pid, unix.SIGTERM)
}

// sendForcefulSignal sends SIGKILL, the escalation issued once the grace
// window elapses without observed termination.
func sendForcefulSignal(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = unix.Kill(cmd.Process.Pid, unix.SIGKILL)
}

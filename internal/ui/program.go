package ui

import (
	"os"

	"github.com/mwilliamson/mintaka/internal/process"
	"github.com/mwilliamson/mintaka/internal/supervisor"
)

// Run drives the foreground loop against an already-opened terminal and
// driver (see OpenTerminal/NewDriver — both are constructed before the
// Supervisor so its wake function can be wired to the driver up front). It
// wires SIGWINCH into the driver's event stream and dispatches decoded
// commands to the Supervisor until a quit is fully settled.
func Run(sup *supervisor.Supervisor, term *Terminal, driver *Driver, cols, rows int) (exitCode int, err error) {
	watchResize(int(os.Stdin.Fd()), driver)

	sup.Resize(cols, rows)

	theme := DefaultTheme()
	quitting := false

	for {
		ev := driver.PollInput()

		switch ev := ev.(type) {
		case KeyEvent:
			dispatch(sup, ev.Key, &quitting)
		case ResizeEvent:
			sup.Resize(ev.Cols, ev.Rows)
			cols, rows = ev.Cols, ev.Rows
		case WakeEvent:
			// Nothing to decode; DoWork below picks up the update.
		}

		sup.DoWork()

		if quitting && sup.IsStopped() {
			return 0, nil
		}

		term.Draw(Render(sup, theme, cols, rows))
	}
}

func dispatch(sup *supervisor.Supervisor, key Key, quitting *bool) {
	decoded := ReadCommand(key, sup.Mode())
	switch decoded.Command {
	case CmdToggleAutofocus:
		sup.ToggleAutofocus()
	case CmdFocusUp:
		sup.MoveFocusUp()
	case CmdFocusDown:
		sup.MoveFocusDown()
	case CmdScrollUp:
		sup.Scroll(process.ScrollPageUp)
	case CmdScrollDown:
		sup.Scroll(process.ScrollPageDown)
	case CmdRestartFocused:
		sup.RestartFocused()
	case CmdEnterForward:
		sup.ForwardInputToFocusedProcess()
	case CmdLeaveForward:
		sup.EnterMainMode()
	case CmdLeaveHistory:
		sup.LeaveHistory()
	case CmdQuit:
		*quitting = true
		sup.StopAll()
	case CmdSendToFocused:
		sup.SendInput(encodeKey(decoded.Key))
	}
}

package ui

import "github.com/mwilliamson/mintaka/internal/supervisor"

// Command is one user-intent event decoded from a Key in the context of
// the current mode.
type Command int

const (
	CmdNone Command = iota
	CmdToggleAutofocus
	CmdFocusUp
	CmdFocusDown
	CmdScrollUp
	CmdScrollDown
	CmdRestartFocused
	CmdEnterForward
	CmdLeaveForward
	CmdLeaveHistory
	CmdQuit
	CmdSendToFocused
)

// DecodedCommand pairs a Command with the raw Key, for CmdSendToFocused
// where the key itself is the payload to forward.
type DecodedCommand struct {
	Command Command
	Key     Key
}

// ReadCommand maps one Key to a Command given the current mode, mirroring
// the original's per-mode keybinding table.
func ReadCommand(key Key, mode supervisor.Mode) DecodedCommand {
	switch mode {
	case supervisor.ModeForwardInput:
		if key.Type == KeyCtrlE {
			return DecodedCommand{Command: CmdLeaveForward}
		}
		return DecodedCommand{Command: CmdSendToFocused, Key: key}

	case supervisor.ModeHistory:
		switch key.Type {
		case KeyCtrlE:
			return DecodedCommand{Command: CmdLeaveHistory}
		case KeyPgUp, KeyUp:
			return DecodedCommand{Command: CmdScrollUp}
		case KeyPgDown, KeyDown:
			return DecodedCommand{Command: CmdScrollDown}
		}
		if key.Type == KeyRunes && string(key.Runes) == "q" {
			return DecodedCommand{Command: CmdLeaveHistory}
		}
		return DecodedCommand{Command: CmdNone}

	default: // ModeMain
		switch key.Type {
		case KeyUp:
			return DecodedCommand{Command: CmdFocusUp}
		case KeyDown:
			return DecodedCommand{Command: CmdFocusDown}
		case KeyPgUp:
			return DecodedCommand{Command: CmdScrollUp}
		case KeyPgDown:
			return DecodedCommand{Command: CmdScrollDown}
		case KeyCtrlE:
			return DecodedCommand{Command: CmdEnterForward}
		case KeyCtrlC:
			return DecodedCommand{Command: CmdQuit}
		case KeyRunes:
			switch string(key.Runes) {
			case "a":
				return DecodedCommand{Command: CmdToggleAutofocus}
			case "r":
				return DecodedCommand{Command: CmdRestartFocused}
			}
		}
		return DecodedCommand{Command: CmdNone}
	}
}

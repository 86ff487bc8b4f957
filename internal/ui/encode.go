package ui

// encodeKey turns a decoded Key back into the bytes a terminal application
// expects on its input stream — the "terminal-to-application encoding"
// step the emulated terminal performs before writing to the PTY master.
func encodeKey(key Key) []byte {
	switch key.Type {
	case KeyEnter:
		return []byte{'\r'}
	case KeyEsc:
		return []byte{0x1b}
	case KeyUp:
		return []byte("\x1b[A")
	case KeyDown:
		return []byte("\x1b[B")
	case KeyPgUp:
		return []byte("\x1b[5~")
	case KeyPgDown:
		return []byte("\x1b[6~")
	case KeyCtrlC:
		return []byte{0x03}
	case KeyRunes:
		return []byte(string(key.Runes))
	default:
		return nil
	}
}

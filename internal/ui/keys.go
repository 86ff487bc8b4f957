package ui

// KeyType identifies the kind of key event produced by the input driver.
type KeyType int

const (
	KeyRunes KeyType = iota
	KeyUp
	KeyDown
	KeyPgUp
	KeyPgDown
	KeyEnter
	KeyEsc
	KeyCtrlC
	KeyCtrlE
)

// Key is one decoded keypress: either a printable rune sequence (KeyRunes)
// or a named control key.
type Key struct {
	Type  KeyType
	Runes []rune
}

func (k Key) String() string {
	if k.Type == KeyRunes {
		return string(k.Runes)
	}
	if s, ok := keyNames[k.Type]; ok {
		return s
	}
	return "unknown"
}

var keyNames = map[KeyType]string{
	KeyUp:     "up",
	KeyDown:   "down",
	KeyPgUp:   "pgup",
	KeyPgDown: "pgdown",
	KeyEnter:  "enter",
	KeyEsc:    "esc",
	KeyCtrlC:  "ctrl+c",
	KeyCtrlE:  "ctrl+e",
}

// escapeTable is the lookup table for the multi-byte ANSI sequences this
// driver recognizes; everything else not found here is decoded byte by
// byte, and any byte other than Ctrl-C, Ctrl-E, CR and ESC (including the
// remaining C0 control bytes) becomes a KeyRunes key.
var escapeTable = map[string]Key{
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[5~": {Type: KeyPgUp},
	"\x1b[6~": {Type: KeyPgDown},
}

const (
	ctrlC = 0x03
	ctrlE = 0x05
	cr    = 0x0d
	esc   = 0x1b
)

package ui

import (
	"bytes"
	"io"

	"github.com/muesli/cancelreader"
)

// Event is one item returned by Driver.PollInput: either a decoded
// keypress, a wake notification (a reader goroutine updated a screen and
// wants the foreground to re-tick), or a terminal resize.
type Event interface{ isEvent() }

// KeyEvent is a decoded keypress.
type KeyEvent struct{ Key Key }

func (KeyEvent) isEvent() {}

// WakeEvent carries no data; it exists purely to unblock a pending
// PollInput call so the foreground can observe a status-channel update
// without requiring a keypress.
type WakeEvent struct{}

func (WakeEvent) isEvent() {}

// ResizeEvent reports a new controlling-terminal geometry.
type ResizeEvent struct{ Cols, Rows int }

func (ResizeEvent) isEvent() {}

// Driver reads raw bytes from the controlling terminal, decodes them into
// key events, and multiplexes them with wake and resize notifications into
// one blocking event stream — the "UI exposes a wake handle and a blocking
// poll_input to the core" boundary.
type Driver struct {
	rd     cancelreader.CancelReader
	events chan Event
	buf    [256]byte
}

// NewDriver wraps r (normally os.Stdin) in a cancelable reader and starts
// the background byte-reading loop.
func NewDriver(r io.Reader) (*Driver, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	d := &Driver{rd: cr, events: make(chan Event, 64)}
	go d.readLoop()
	return d, nil
}

func (d *Driver) readLoop() {
	for {
		n, err := d.rd.Read(d.buf[:])
		if n > 0 {
			for _, key := range decodeKeys(d.buf[:n]) {
				d.events <- KeyEvent{Key: key}
			}
		}
		if err != nil {
			return
		}
	}
}

// decodeKeys splits one read chunk into individual Key events: multi-byte
// escape sequences are looked up in escapeTable first; anything else is
// decoded byte-by-byte, mapping the handful of control bytes Mintaka cares
// about and otherwise treating the byte as a printable rune.
func decodeKeys(chunk []byte) []Key {
	var keys []Key

	if bytes.HasPrefix(chunk, []byte{esc}) {
		if k, ok := escapeTable[string(chunk)]; ok {
			return []Key{k}
		}
	}

	for i := 0; i < len(chunk); i++ {
		switch chunk[i] {
		case ctrlC:
			keys = append(keys, Key{Type: KeyCtrlC})
		case ctrlE:
			keys = append(keys, Key{Type: KeyCtrlE})
		case cr:
			keys = append(keys, Key{Type: KeyEnter})
		case esc:
			keys = append(keys, Key{Type: KeyEsc})
		default:
			keys = append(keys, Key{Type: KeyRunes, Runes: []rune{rune(chunk[i])}})
		}
	}
	return keys
}

// Wake enqueues a WakeEvent, called by process-instance reader goroutines
// after every screen update. Non-blocking: a wake that arrives while one
// is already queued is redundant, since the foreground will re-tick soon
// regardless.
func (d *Driver) Wake() {
	select {
	case d.events <- WakeEvent{}:
	default:
	}
}

// Resize enqueues a ResizeEvent, called by the SIGWINCH handler.
func (d *Driver) Resize(cols, rows int) {
	select {
	case d.events <- ResizeEvent{Cols: cols, Rows: rows}:
	default:
	}
}

// PollInput blocks until the next event is available.
func (d *Driver) PollInput() Event {
	return <-d.events
}

// Close cancels the underlying reader and stops the read loop.
func (d *Driver) Close() error {
	d.rd.Cancel()
	return d.rd.Close()
}

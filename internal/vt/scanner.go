package vt

// scanner is a small single-pass ANSI/escape-sequence state machine,
// adapted from the plain-text-capture approach of stripping escape codes
// while tracking just enough state to find line boundaries. It does not
// model cursor position, erase, or styled cells at all — midterm.Terminal
// owns that — it only needs to know where one printable line ends and the
// next begins, and to consume (not necessarily honor) everything else
// without corrupting that boundary detection.
type scanner struct {
	state scanState
	line  []byte
}

type scanState int

const (
	scanNormal scanState = iota
	scanEsc
	scanCSI
	scanOSC
	scanOSCEsc
)

// feed scans p and returns the text of every line completed during this
// call.
func (sc *scanner) feed(p []byte) []string {
	var completed []string

	for _, b := range p {
		switch sc.state {
		case scanNormal:
			switch b {
			case '\n':
				completed = append(completed, string(sc.line))
				sc.line = sc.line[:0]
			case '\r':
				// Carriage return completes the in-progress line and
				// clears it, so a line rewritten in place is classified
				// per rewrite. An empty line is not reported here, so
				// the CR of a CRLF pair adds no extra entry.
				if len(sc.line) > 0 {
					completed = append(completed, string(sc.line))
					sc.line = sc.line[:0]
				}
			case 0x1b:
				sc.state = scanEsc
			case '\b', 0x7f:
				if len(sc.line) > 0 {
					sc.line = sc.line[:len(sc.line)-1]
				}
			case '\t':
				sc.line = append(sc.line, ' ', ' ', ' ', ' ')
			default:
				if b >= 0x20 {
					sc.line = append(sc.line, b)
				}
			}

		case scanEsc:
			switch b {
			case '[':
				sc.state = scanCSI
			case ']':
				sc.state = scanOSC
			case 'c': // RIS full reset: complete the in-progress line
				if len(sc.line) > 0 {
					completed = append(completed, string(sc.line))
				}
				sc.line = sc.line[:0]
				sc.state = scanNormal
			default:
				// Single-character escape (e.g. ESC 7/8 save/restore
				// cursor): consumed, no effect on line boundaries.
				sc.state = scanNormal
			}

		case scanCSI:
			if isCSIFinal(b) {
				sc.state = scanNormal
			}
			// else: still inside the parameter/intermediate bytes, keep
			// consuming silently.

		case scanOSC:
			switch b {
			case 0x07: // BEL terminates OSC
				sc.state = scanNormal
			case 0x1b:
				sc.state = scanOSCEsc
			}

		case scanOSCEsc:
			// ESC \ (ST) terminates OSC; anything else, assume still OSC.
			if b == '\\' {
				sc.state = scanNormal
			} else {
				sc.state = scanOSC
			}
		}
	}

	return completed
}

func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

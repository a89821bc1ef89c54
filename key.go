package console

//go:generate stringer -type=Key

// Key is the semantic meaning of raw terminal input.
type Key int

const (
	// KeyOther is any control byte or escape sequence without a meaning of
	// its own, including a lone escape.
	KeyOther Key = iota
	// KeyContent is printable input, see KeyEvent.Text.
	KeyContent
	KeyBackspace
	KeyReturn
	KeyTab
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
)

// KeyEvent is a single classified unit of terminal input.
type KeyEvent struct {
	Key Key
	// Text is the input as read, for KeyContent this is the typed character.
	Text string
}

const (
	keyEscape    = 0x1b
	keyBackspace = 0x7f
	keyTab       = '\t'
)

// ClassifyKey maps one byte, one UTF-8 encoded character, or one assembled
// escape sequence to a KeyEvent.
func ClassifyKey(b []byte) KeyEvent {
	ev := KeyEvent{Key: KeyOther, Text: string(b)}
	switch {
	case len(b) == 0:
	case len(b) == 1 && b[0] == keyBackspace:
		ev.Key = KeyBackspace
	case isReturn(b):
		ev.Key = KeyReturn
	case len(b) == 1 && b[0] == keyTab:
		ev.Key = KeyTab
	case b[0] == keyEscape:
		if len(b) == 3 && (b[1] == '[' || b[1] == 'O') {
			switch b[2] {
			case 'A':
				ev.Key = KeyUp
			case 'B':
				ev.Key = KeyDown
			case 'C':
				ev.Key = KeyRight
			case 'D':
				ev.Key = KeyLeft
			}
		}
	case b[0] < 0x20:
	default:
		ev.Key = KeyContent
	}
	return ev
}

func isReturn(b []byte) bool {
	switch string(b) {
	case "\n", "\r", "\r\n":
		return true
	}
	return false
}

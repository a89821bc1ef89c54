//go:build windows

package console

import (
	"unicode/utf8"

	tty "github.com/mattn/go-tty"
)

// OpenTTY returns an Input reading the console.
func OpenTTY() (*Input, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	in := NewInput(&ttyReader{tty: t}, Interactive(true))
	in.makeRaw = t.Raw
	in.closer = t
	return in, nil
}

// ttyReader adapts a go-tty console, which decodes key events into runes
// and VT sequences, to an io.Reader.
type ttyReader struct {
	tty *tty.TTY
	buf []byte
}

func (r *ttyReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		ru, err := r.tty.ReadRune()
		if err != nil {
			return 0, err
		}
		r.buf = utf8.AppendRune(r.buf[:0], ru)
		for r.tty.Buffered() {
			ru, err = r.tty.ReadRune()
			if err != nil {
				break
			}
			r.buf = utf8.AppendRune(r.buf, ru)
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

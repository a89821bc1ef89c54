package console

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joeycumines/go-console/debug"
	"github.com/joeycumines/go-console/term"
)

// maxEscapeLen bounds the length of an escape sequence read as one key.
const maxEscapeLen = 16

// InputDevice is a source of answers. ReadKey and ReadLine return io.EOF
// once input is exhausted.
type InputDevice interface {
	// ReadKey reads one byte, one UTF-8 character, or one escape sequence.
	ReadKey() ([]byte, error)
	// ReadLine reads one line, without the line terminator.
	ReadLine() (string, error)
	// IsInteractive reports whether the device is a terminal.
	IsInteractive() bool
}

// RawModeDevice is implemented by devices that need to be switched out of
// line buffered, echoing mode while an answer is typed.
type RawModeDevice interface {
	EnterRawMode() error
	ExitRawMode() error
}

// Input is an InputDevice reading from an io.Reader, normally a terminal.
type Input struct {
	r           *bufio.Reader
	interactive bool
	makeRaw     func() (restore func() error, err error)
	restore     func() error
	closer      io.Closer
	// path names the terminal device read, if any
	path string
}

var (
	_ InputDevice   = (*Input)(nil)
	_ RawModeDevice = (*Input)(nil)
)

// InputOption configures an Input.
type InputOption func(in *Input)

// Interactive overrides the detection of whether the reader is a terminal.
func Interactive(interactive bool) InputOption {
	return func(in *Input) {
		in.interactive = interactive
	}
}

// NewInput returns an Input reading from r. If r is a terminal file, it is
// interactive and raw mode is supported.
func NewInput(r io.Reader, opts ...InputOption) *Input {
	in := &Input{r: bufio.NewReader(r)}
	if f, ok := r.(*os.File); ok && isTerminalFD(f.Fd()) {
		in.interactive = true
		in.path = f.Name()
		fd := int(f.Fd())
		in.makeRaw = func() (func() error, error) {
			if err := term.SetRaw(fd); err != nil {
				return nil, err
			}
			return func() error { return term.RestoreFD(fd) }, nil
		}
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// IsInteractive implements InputDevice.
func (in *Input) IsInteractive() bool { return in.interactive }

// ReadKey implements InputDevice. It fails with ErrNotInteractive unless
// the device is interactive.
func (in *Input) ReadKey() ([]byte, error) {
	if !in.interactive {
		return nil, ErrNotInteractive
	}
	b, err := in.r.ReadByte()
	if err != nil {
		return nil, err
	}
	key := []byte{b}
	switch {
	case b == keyEscape:
		key = in.readEscape(key)
	case b == '\r':
		if next, err := in.peekBuffered(); err == nil && next == '\n' {
			_, _ = in.r.ReadByte()
			key = append(key, '\n')
		}
	case b >= utf8.RuneSelf:
		for !utf8.FullRune(key) && len(key) < utf8.UTFMax {
			c, err := in.r.ReadByte()
			if err != nil {
				break
			}
			key = append(key, c)
		}
	}
	debug.Logger().Trace().
		Str("key", ClassifyKey(key).Key.String()).
		Int("bytes", len(key)).
		Log("read key")
	return key, nil
}

// readEscape completes an escape sequence from bytes that arrived with the
// escape byte. A lone escape is returned as is.
func (in *Input) readEscape(key []byte) []byte {
	next, err := in.peekBuffered()
	if err != nil {
		return key
	}
	_, _ = in.r.ReadByte()
	key = append(key, next)
	if next != '[' && next != 'O' {
		return key
	}
	for len(key) < maxEscapeLen {
		c, err := in.peekBuffered()
		if err != nil {
			break
		}
		_, _ = in.r.ReadByte()
		key = append(key, c)
		if c >= 0x40 && c <= 0x7e {
			break
		}
	}
	return key
}

var errNothingBuffered = errors.New("nothing buffered")

// peekBuffered returns the next byte only if it has already been read from
// the device, so it never blocks.
func (in *Input) peekBuffered() (byte, error) {
	if in.r.Buffered() == 0 {
		return 0, errNothingBuffered
	}
	b, err := in.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadLine implements InputDevice.
func (in *Input) ReadLine() (string, error) {
	line, err := in.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// EnterRawMode implements RawModeDevice. It does nothing for devices that
// are not terminals.
func (in *Input) EnterRawMode() error {
	if in.makeRaw == nil || in.restore != nil {
		return nil
	}
	restore, err := in.makeRaw()
	if err != nil {
		return err
	}
	in.restore = restore
	debug.Log("entered raw mode")
	return nil
}

// ExitRawMode implements RawModeDevice.
func (in *Input) ExitRawMode() error {
	if in.restore == nil {
		return nil
	}
	restore := in.restore
	in.restore = nil
	debug.Log("exited raw mode")
	return restore()
}

// Close restores the terminal mode and closes a device opened by OpenTTY.
func (in *Input) Close() error {
	err := in.ExitRawMode()
	debug.AssertNoError(err)
	if in.closer != nil {
		err = errors.Join(err, in.closer.Close())
		in.closer = nil
	}
	return err
}

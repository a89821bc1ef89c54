//go:build !windows

package console

import (
	"os"
)

// OpenTTY returns an Input reading the controlling terminal, or standard
// input if there is none.
func OpenTTY() (*Input, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return NewInput(os.Stdin), nil
		}
		return nil, err
	}
	in := NewInput(f)
	in.closer = f
	return in, nil
}

//go:build unix

// Package term switches a terminal between cooked and the character-at-a-time
// mode used while reading interactive answers.
package term

import (
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

var (
	saveTermiosOnce sync.Once
	saveTermiosErr  error
	saveTermiosFD   int
	saveTermios     unix.Termios
)

// getOriginalTermios captures the attributes of the first terminal it sees,
// so that Restore can always return to the state before any modification.
func getOriginalTermios(fd int) (*unix.Termios, error) {
	saveTermiosOnce.Do(func() {
		saveTermiosFD = fd
		var v *unix.Termios
		v, saveTermiosErr = termios.Tcgetattr(uintptr(fd))
		if saveTermiosErr == nil {
			saveTermios = *v
		}
	})
	if saveTermiosErr != nil {
		return nil, saveTermiosErr
	}
	v := saveTermios
	return &v, nil
}

// SetRaw disables echo and canonical line processing on fd. Output
// post-processing and signal generation are left untouched, so line feeds
// written while in this mode still return the carriage and Ctrl-C still
// interrupts.
func SetRaw(fd int) error {
	n, err := getOriginalTermios(fd)
	if err != nil {
		return err
	}
	n.Lflag &^= unix.ECHO | unix.ICANON | unix.ECHONL
	n.Cc[unix.VMIN] = 1
	n.Cc[unix.VTIME] = 0
	return termios.Tcsetattr(uintptr(fd), termios.TCSANOW, n)
}

// Restore restores the saved terminal attributes on the saved fd.
func Restore() error {
	n, err := getOriginalTermios(0)
	if err != nil {
		return err
	}
	return termios.Tcsetattr(uintptr(saveTermiosFD), termios.TCSANOW, n)
}

// RestoreFD restores the saved terminal attributes on fd.
func RestoreFD(fd int) error {
	n, err := getOriginalTermios(fd)
	if err != nil {
		return err
	}
	return termios.Tcsetattr(uintptr(fd), termios.TCSANOW, n)
}

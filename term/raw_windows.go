//go:build windows

package term

import (
	"sync"

	xterm "golang.org/x/term"
)

var (
	stateMu sync.Mutex
	states  = map[int]*xterm.State{}
	lastFD  = -1
)

// SetRaw puts the console on fd into raw mode.
func SetRaw(fd int) error {
	stateMu.Lock()
	defer stateMu.Unlock()
	s, err := xterm.MakeRaw(fd)
	if err != nil {
		return err
	}
	if _, ok := states[fd]; !ok {
		states[fd] = s
	}
	lastFD = fd
	return nil
}

// Restore restores the console most recently passed to SetRaw.
func Restore() error {
	stateMu.Lock()
	fd := lastFD
	stateMu.Unlock()
	return RestoreFD(fd)
}

// RestoreFD restores the console on fd to the state before SetRaw.
func RestoreFD(fd int) error {
	stateMu.Lock()
	defer stateMu.Unlock()
	s, ok := states[fd]
	if !ok {
		return nil
	}
	delete(states, fd)
	return xterm.Restore(fd, s)
}

func getSize(fd int) (int, int, error) {
	return xterm.GetSize(fd)
}

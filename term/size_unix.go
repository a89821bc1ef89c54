//go:build unix

package term

import (
	"golang.org/x/sys/unix"
)

var ioctlWinsize = unix.IoctlGetWinsize

func getSize(fd int) (int, int, error) {
	ws, err := ioctlWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

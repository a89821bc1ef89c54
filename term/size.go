package term

import (
	xterm "golang.org/x/term"
)

// Default dimensions reported when the size of a terminal cannot be queried.
const (
	DefRowCount = 24
	DefColCount = 80
)

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return xterm.IsTerminal(fd)
}

// GetSize returns the columns and rows of the terminal on fd, falling back
// to DefColCount x DefRowCount.
func GetSize(fd int) (cols, rows int) {
	cols, rows, err := getSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return DefColCount, DefRowCount
	}
	return cols, rows
}

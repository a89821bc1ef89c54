package termtest

import (
	"fmt"
	"strings"
)

func lookupKey(k string) (string, error) {
	if seq, ok := keyMap[strings.ToLower(k)]; ok {
		return seq, nil
	}
	return "", fmt.Errorf("unknown key: %s", k)
}

// keyMap maps key names to what a terminal sends for them. Names follow the
// bubbletea conventions.
var keyMap = map[string]string{
	"enter":     "\r",
	"tab":       "\t",
	"backspace": "\x7f",
	"esc":       "\x1b",
	"escape":    "\x1b",
	"space":     " ",
	"up":        "\x1b[A",
	"down":      "\x1b[B",
	"right":     "\x1b[C",
	"left":      "\x1b[D",
	"home":      "\x1b[H",
	"end":       "\x1b[F",
	"delete":    "\x1b[3~",
	"ctrl+a":    "\x01",
	"ctrl+c":    "\x03",
	"ctrl+d":    "\x04",
	"ctrl+e":    "\x05",
	"ctrl+u":    "\x15",
	"ctrl+w":    "\x17",
}

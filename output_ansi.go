package console

import (
	"strconv"
)

const (
	ansiSaveCursor      = "\x1b7"
	ansiRestoreCursor   = "\x1b8"
	ansiClearDown       = "\x1b[0J"
	ansiClearUp         = "\x1b[1J"
	ansiClearScreen     = "\x1b[2J"
	ansiClearLineRight  = "\x1b[K"
	ansiClearLineLeft   = "\x1b[1K"
	ansiClearLine       = "\x1b[2K"
	ansiHideCursor      = "\x1b[?25l"
	ansiShowCursor      = "\x1b[?25h"
	ansiUpperLeft       = "\x1b[H"
	ansiBold            = "\x1b[1m"
	ansiDim             = "\x1b[2m"
	ansiUnderline       = "\x1b[4m"
	ansiBlink           = "\x1b[5m"
	ansiReverse         = "\x1b[7m"
	ansiInvisible       = "\x1b[8m"
	ansiResetAttributes = "\x1b[0m"
	ansiWindowRestore   = "\x1b[1t"
	ansiWindowMinimize  = "\x1b[2t"
	ansiWindowRaise     = "\x1b[5t"
	ansiWindowLower     = "\x1b[6t"
)

func csi(n int, final byte) string {
	return "\x1b[" + strconv.Itoa(n) + string(final)
}

func (o *Output) cursorUp(n int) {
	if n > 0 {
		o.ansi(csi(n, 'A'))
	}
}

func (o *Output) cursorDown(n int) {
	if n > 0 {
		o.ansi(csi(n, 'B'))
	}
}

func (o *Output) cursorRight(n int) {
	if n > 0 {
		o.ansi(csi(n, 'C'))
	}
}

func (o *Output) cursorLeft(n int) {
	if n > 0 {
		o.ansi(csi(n, 'D'))
	}
}

func (o *Output) writeAnsi(code string) error {
	o.ansi(code)
	return o.flush()
}

// The methods below send a single control sequence to a terminal sink, and
// do nothing for other sinks. They do not change the tracked cursor, use
// MoveCursorToPosition for movements that must be tracked.

// MoveCursorUp moves the cursor up n lines.
func (o *Output) MoveCursorUp(n int) error {
	o.cursorUp(n)
	return o.flush()
}

// MoveCursorDown moves the cursor down n lines.
func (o *Output) MoveCursorDown(n int) error {
	o.cursorDown(n)
	return o.flush()
}

// MoveCursorRight moves the cursor right n columns.
func (o *Output) MoveCursorRight(n int) error {
	o.cursorRight(n)
	return o.flush()
}

// MoveCursorLeft moves the cursor left n columns.
func (o *Output) MoveCursorLeft(n int) error {
	o.cursorLeft(n)
	return o.flush()
}

func (o *Output) MoveCursorToUpperLeftCorner() error { return o.writeAnsi(ansiUpperLeft) }
func (o *Output) SaveCursorPosition() error          { return o.writeAnsi(ansiSaveCursor) }
func (o *Output) RestoreCursorPosition() error       { return o.writeAnsi(ansiRestoreCursor) }
func (o *Output) ClearFromCursorDown() error         { return o.writeAnsi(ansiClearDown) }
func (o *Output) ClearFromCursorUp() error           { return o.writeAnsi(ansiClearUp) }
func (o *Output) ClearLineFromCursorRight() error    { return o.writeAnsi(ansiClearLineRight) }
func (o *Output) ClearLineFromCursorLeft() error     { return o.writeAnsi(ansiClearLineLeft) }
func (o *Output) ClearEntireLine() error             { return o.writeAnsi(ansiClearLine) }
func (o *Output) ClearEntireScreen() error           { return o.writeAnsi(ansiClearScreen) }
func (o *Output) HideCursor() error                  { return o.writeAnsi(ansiHideCursor) }
func (o *Output) ShowCursor() error                  { return o.writeAnsi(ansiShowCursor) }
func (o *Output) Bold() error                        { return o.writeAnsi(ansiBold) }
func (o *Output) Dim() error                         { return o.writeAnsi(ansiDim) }
func (o *Output) Underline() error                   { return o.writeAnsi(ansiUnderline) }
func (o *Output) Blink() error                       { return o.writeAnsi(ansiBlink) }
func (o *Output) Reverse() error                     { return o.writeAnsi(ansiReverse) }
func (o *Output) Invisible() error                   { return o.writeAnsi(ansiInvisible) }
func (o *Output) ResetAttributes() error             { return o.writeAnsi(ansiResetAttributes) }
func (o *Output) MinimizeWindow() error              { return o.writeAnsi(ansiWindowMinimize) }
func (o *Output) RestoreWindow() error               { return o.writeAnsi(ansiWindowRestore) }
func (o *Output) RaiseWindow() error                 { return o.writeAnsi(ansiWindowRaise) }
func (o *Output) LowerWindow() error                 { return o.writeAnsi(ansiWindowLower) }

// MoveWindow moves the terminal window to x, y pixels, if supported.
func (o *Output) MoveWindow(x, y int) error {
	return o.writeAnsi("\x1b[3;" + strconv.Itoa(x) + ";" + strconv.Itoa(y) + "t")
}

// SetWindowSize resizes the terminal window to width columns and height
// rows, if supported.
func (o *Output) SetWindowSize(width, height int) error {
	return o.writeAnsi("\x1b[8;" + strconv.Itoa(height) + ";" + strconv.Itoa(width) + "t")
}

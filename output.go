package console

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/go-console/debug"
	"github.com/joeycumines/go-console/markup"
	"github.com/joeycumines/go-console/term"
)

// Output writes messages to a device while remembering everything written,
// so that earlier output can later be extended, replaced or prefixed in
// place. See Section for a stable handle on one piece of output.
//
// An Output is not safe for concurrent use.
type Output struct {
	w          io.Writer
	sink       SinkKind
	state      *BufferState
	formatter  Formatter
	verbosity  Verbosity
	formatting *bool
	pending    bytes.Buffer
}

// NewOutput returns an Output writing to w. The sink kind is detected from
// w unless WithSink is given.
func NewOutput(w io.Writer, opts ...OutputOption) *Output {
	o := &Output{
		w:         w,
		sink:      DetectSink(w),
		verbosity: VerbosityNormal,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.state == nil {
		o.state = NewBufferState()
	}
	if _, ok := w.(fileSink); !ok && o.sink == SinkSeekableFile {
		o.sink = SinkOther
	}
	debug.Logger().Debug().
		Str("sink", o.sink.String()).
		Str("verbosity", o.verbosity.String()).
		Log("new output")
	return o
}

// Sink returns the kind of device written to.
func (o *Output) Sink() SinkKind { return o.sink }

// Verbosity returns the configured verbosity.
func (o *Output) Verbosity() Verbosity { return o.verbosity }

// SetVerbosity changes the configured verbosity.
func (o *Output) SetVerbosity(v Verbosity) { o.verbosity = v }

// Formatter returns the configured Formatter, which may be nil.
func (o *Output) Formatter() Formatter { return o.formatter }

// SetFormatter replaces the Formatter.
func (o *Output) SetFormatter(f Formatter) { o.formatter = f }

// EnableFormatting forces markup to be rendered.
func (o *Output) EnableFormatting() {
	v := true
	o.formatting = &v
}

// DisableFormatting forces markup to be stripped.
func (o *Output) DisableFormatting() {
	v := false
	o.formatting = &v
}

// ResetFormatting renders markup only on terminals, the default.
func (o *Output) ResetFormatting() { o.formatting = nil }

// FormattingActive returns the forced formatting mode, forced is false if
// the mode is decided by the sink.
func (o *Output) FormattingActive() (active, forced bool) {
	if o.formatting == nil {
		return false, false
	}
	return *o.formatting, true
}

// BufferState returns the state, shared with any Output it was shared with.
func (o *Output) BufferState() *BufferState { return o.state }

// ShareBufferWith makes o use the BufferState of other, so that both track
// one coherent rendering of a device they have in common.
func (o *Output) ShareBufferWith(other *Output) {
	o.state = other.state
}

// Buffer returns a copy of the written fragments.
func (o *Output) Buffer() []string { return o.state.Fragments() }

// CursorPosition returns the tracked cursor.
func (o *Output) CursorPosition() Cursor { return o.state.cursor }

// Write appends message to the output. It returns false, without error,
// if the write was suppressed by verbosity.
func (o *Output) Write(message string, opts ...WriteOption) (bool, error) {
	c := resolveWriteOptions(opts)
	if !o.verbosity.Allows(c.verbosity) {
		return false, nil
	}
	message = o.prepareMessage(message, c)

	tip := o.TipCursorPosition()
	o.state.append(message)

	var err error
	switch o.sink {
	case SinkTerminal:
		o.moveCursorTo(tip)
		o.put(message)
	case SinkSeekableFile:
		err = o.rewriteFile()
	default:
		o.put(message)
	}
	o.state.cursor = o.TipCursorPosition()
	return true, errors.Join(err, o.flush())
}

// WriteLn writes message followed by a line break.
func (o *Output) WriteLn(message string, opts ...WriteOption) (bool, error) {
	return o.Write(message+"\n", opts...)
}

// LineBreak writes count line breaks.
func (o *Output) LineBreak(count int, opts ...WriteOption) (bool, error) {
	if count < 0 {
		count = 0
	}
	return o.Write(strings.Repeat("\n", count), opts...)
}

// WriteAt appends message to the fragment at pos.
func (o *Output) WriteAt(pos int, message string, opts ...WriteOption) (bool, error) {
	return o.spliceAt(spliceWrite, pos, message, opts)
}

// OverwriteAt replaces the fragment at pos with message.
func (o *Output) OverwriteAt(pos int, message string, opts ...WriteOption) (bool, error) {
	return o.spliceAt(spliceOverwrite, pos, message, opts)
}

// PrependAt inserts message at the start of the fragment at pos.
func (o *Output) PrependAt(pos int, message string, opts ...WriteOption) (bool, error) {
	return o.spliceAt(splicePrepend, pos, message, opts)
}

// BufferSplitAt partitions the fragments around pos.
func (o *Output) BufferSplitAt(pos int) (Split, error) {
	s, err := o.state.SplitAt(pos)
	if err != nil {
		return Split{}, fmt.Errorf("%w: %d", err, pos)
	}
	return s, nil
}

// ContentCursorPosition returns the cursor position at the end of text, if
// text were written from the start of the output. Markup in text is not
// displayed, so it is not counted.
func (o *Output) ContentCursorPosition(text string) Cursor {
	if o.formatter != nil {
		text = o.formatter.UnFormat(text)
	}
	return textCursor(text)
}

// TipCursorPosition returns the position at the end of all output.
func (o *Output) TipCursorPosition() Cursor {
	return renderedCursor(o.state.String())
}

// renderedCursor measures fragments as stored, which have already been
// through the formatter: only escape sequences take no space.
func renderedCursor(fragments ...string) Cursor {
	return textCursor(markup.StripANSI(strings.Join(fragments, "")))
}

// MoveCursorToPosition moves the cursor to line and column, by exact
// relative movements from the tracked cursor.
func (o *Output) MoveCursorToPosition(line, column int) error {
	o.moveCursorTo(Cursor{Line: line, Column: column})
	return o.flush()
}

// MoveCursorToStartPosition moves the cursor to the first line written.
func (o *Output) MoveCursorToStartPosition() error {
	return o.MoveCursorToPosition(1, 0)
}

// MoveCursorToTipPosition moves the cursor to the end of all output.
func (o *Output) MoveCursorToTipPosition() error {
	tip := o.TipCursorPosition()
	return o.MoveCursorToPosition(tip.Line, tip.Column)
}

// Clear forgets all output and, on a terminal, erases it from the screen.
func (o *Output) Clear() error {
	o.state.reset()
	var err error
	if o.sink == SinkSeekableFile {
		err = o.rewriteFile()
	}
	o.moveCursorTo(Cursor{Line: 2})
	o.ansi(ansiClearDown)
	o.moveCursorTo(Cursor{Line: 1})
	o.ansi(ansiClearDown)
	debug.Logger().Trace().Str("sink", o.sink.String()).Log("clear")
	return errors.Join(err, o.flush())
}

// WindowSize returns the columns and rows of a terminal sink, or the
// defaults from the term package for anything else.
func (o *Output) WindowSize() (cols, rows int) {
	if f, ok := o.w.(fdWriter); ok && o.sink == SinkTerminal {
		return term.GetSize(int(f.Fd()))
	}
	return term.DefColCount, term.DefRowCount
}

// reserve appends an empty fragment and returns its position.
func (o *Output) reserve() int {
	return o.state.append("")
}

func (o *Output) spliceAt(kind spliceKind, pos int, message string, opts []WriteOption) (bool, error) {
	c := resolveWriteOptions(opts)
	if !o.verbosity.Allows(c.verbosity) {
		return false, nil
	}
	if err := o.displayAt(kind, o.prepareMessage(message, c), pos); err != nil {
		return false, err
	}
	return true, nil
}

// displayAt applies an already prepared splice to the fragment at pos and
// renders the change.
func (o *Output) displayAt(kind spliceKind, content string, pos int) error {
	split, err := o.state.SplitAt(pos)
	if err != nil {
		return fmt.Errorf("%w: %d", err, pos)
	}

	var update string
	switch kind {
	case spliceWrite:
		update = split.Content + content
	case spliceOverwrite:
		update = content
	case splicePrepend:
		update = content + split.Content
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSpliceKind, int(kind))
	}
	o.state.replace(pos, update)

	debug.Logger().Trace().
		Str("kind", kind.String()).
		Int("position", pos).
		Str("sink", o.sink.String()).
		Log("splice")

	switch o.sink {
	case SinkTerminal:
		o.moveCursorTo(renderedCursor(split.Before...))
		o.ansi(ansiClearDown)
		o.put(update)
		o.put(strings.Join(split.After, ""))
	case SinkSeekableFile:
		err = o.rewriteFile()
	default:
		o.put(content)
	}
	o.state.cursor = o.TipCursorPosition()
	return errors.Join(err, o.flush())
}

// moveCursorTo emits the relative movements from the tracked cursor to
// target: left to column zero, vertically, then right to the column.
func (o *Output) moveCursorTo(target Cursor) {
	current := o.state.cursor
	if current == target {
		return
	}
	o.cursorLeft(current.Column)
	if offset := current.Line - target.Line; offset >= 0 {
		o.cursorUp(offset)
	} else {
		o.cursorDown(-offset)
	}
	o.cursorRight(target.Column)
	o.state.cursor = target
}

func (o *Output) prepareMessage(message string, c writeConfig) string {
	if o.formatter == nil {
		return message
	}
	switch {
	case c.escapeTags != nil:
		if *c.escapeTags {
			return o.formatter.Raw(message, c.width)
		}
		return o.formatter.Format(message, c.width)
	case o.formatting != nil:
		if *o.formatting {
			return o.formatter.Format(message, c.width)
		}
		return o.formatter.Plain(message, c.width)
	case o.sink == SinkTerminal:
		return o.formatter.Format(message, c.width)
	default:
		return o.formatter.Plain(message, c.width)
	}
}

func (o *Output) put(s string) {
	o.pending.WriteString(s)
}

// ansi queues an escape sequence, which is only ever sent to terminals.
func (o *Output) ansi(s string) {
	if o.sink == SinkTerminal {
		o.pending.WriteString(s)
	}
}

func (o *Output) flush() error {
	if o.pending.Len() == 0 {
		return nil
	}
	defer o.pending.Reset()
	_, err := o.w.Write(o.pending.Bytes())
	return err
}

// rewriteFile replaces the contents of a file sink with the whole buffer.
// Every edit costs a full rewrite.
func (o *Output) rewriteFile() error {
	f := o.w.(fileSink)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	_, err := io.WriteString(f, o.state.String())
	return err
}

type spliceKind int

const (
	spliceWrite spliceKind = iota
	spliceOverwrite
	splicePrepend
)

func (k spliceKind) String() string {
	switch k {
	case spliceWrite:
		return "write"
	case spliceOverwrite:
		return "overwrite"
	case splicePrepend:
		return "prepend"
	default:
		return fmt.Sprintf("spliceKind(%d)", int(k))
	}
}

package console

import (
	"strings"
	"unicode/utf8"
)

// Cursor is a position on screen, relative to the first line written by an
// Output. Line starts at 1, Column at 0.
type Cursor struct {
	Line   int
	Column int
}

// Split partitions the fragments of a BufferState around one position.
type Split struct {
	Before  []string
	Content string
	After   []string
}

// Text returns the concatenation of Before, Content and After.
func (s Split) Text() string {
	return strings.Join(s.Before, "") + s.Content + strings.Join(s.After, "")
}

// BufferState is everything an Output has written, one fragment per accepted
// write, plus the tracked cursor. Two Outputs writing to the same device
// share a single BufferState.
type BufferState struct {
	fragments []string
	cursor    Cursor
}

// NewBufferState returns an empty BufferState with the cursor at the start.
func NewBufferState() *BufferState {
	return &BufferState{cursor: Cursor{Line: 1}}
}

// Fragments returns a copy of the buffered fragments.
func (b *BufferState) Fragments() []string {
	return append([]string(nil), b.fragments...)
}

// Len returns the number of fragments.
func (b *BufferState) Len() int {
	return len(b.fragments)
}

// Cursor returns the tracked cursor.
func (b *BufferState) Cursor() Cursor {
	return b.cursor
}

// String returns all fragments joined.
func (b *BufferState) String() string {
	return strings.Join(b.fragments, "")
}

func (b *BufferState) valid(pos int) bool {
	return pos >= 0 && pos < len(b.fragments)
}

// SplitAt partitions the fragments around pos.
func (b *BufferState) SplitAt(pos int) (Split, error) {
	if !b.valid(pos) {
		return Split{}, ErrInvalidPosition
	}
	return Split{
		Before:  append([]string(nil), b.fragments[:pos]...),
		Content: b.fragments[pos],
		After:   append([]string(nil), b.fragments[pos+1:]...),
	}, nil
}

func (b *BufferState) append(fragment string) int {
	b.fragments = append(b.fragments, fragment)
	return len(b.fragments) - 1
}

func (b *BufferState) replace(pos int, fragment string) {
	b.fragments[pos] = fragment
}

func (b *BufferState) reset() {
	b.fragments = nil
}

// textCursor returns the cursor at the end of text, which must already be
// free of markup. Columns count code points, not display cells.
func textCursor(text string) Cursor {
	line := strings.Count(text, "\n") + 1
	last := text
	if i := strings.LastIndex(text, "\n"); i >= 0 {
		last = text[i+1:]
	}
	last = strings.TrimRight(last, "\r")
	return Cursor{Line: line, Column: utf8.RuneCountInString(last)}
}

package console

import (
	"strings"
)

// Section is a handle on one fragment of an Output, for output that is
// updated in place, such as a prompt or a progress line. A Section must be
// placed with PlaceHere before use.
type Section struct {
	out      *Output
	position int
	placed   bool
}

// NewSection returns an unplaced Section bound to out.
func NewSection(out *Output) *Section {
	return &Section{out: out}
}

// Section is shorthand for NewSection(o).
func (o *Output) Section() *Section {
	return NewSection(o)
}

// IsPlaced reports whether PlaceHere has been called.
func (s *Section) IsPlaced() bool { return s.placed }

// Position returns the buffer position of the section.
func (s *Section) Position() (int, error) {
	if !s.placed {
		return 0, ErrSectionNotPlaced
	}
	return s.position, nil
}

// PlaceHere binds the section to a new fragment at the end of the output.
// A section that was already placed is moved there along with its content.
func (s *Section) PlaceHere() error {
	if !s.placed {
		s.position = s.out.reserve()
		s.placed = true
		return nil
	}

	split, err := s.out.BufferSplitAt(s.position)
	if err != nil {
		return err
	}
	if err := s.out.displayAt(spliceOverwrite, "", s.position); err != nil {
		return err
	}
	s.position = s.out.reserve()
	return s.out.displayAt(spliceWrite, split.Content, s.position)
}

// Write appends message to the section.
func (s *Section) Write(message string, opts ...WriteOption) (bool, error) {
	if !s.placed {
		return false, ErrSectionNotPlaced
	}
	return s.out.WriteAt(s.position, message, opts...)
}

// WriteLn appends message and a line break to the section.
func (s *Section) WriteLn(message string, opts ...WriteOption) (bool, error) {
	return s.Write(message+"\n", opts...)
}

// Overwrite replaces the content of the section.
func (s *Section) Overwrite(message string, opts ...WriteOption) (bool, error) {
	if !s.placed {
		return false, ErrSectionNotPlaced
	}
	return s.out.OverwriteAt(s.position, message, opts...)
}

// OverwriteLn replaces the content of the section with message and a line
// break.
func (s *Section) OverwriteLn(message string, opts ...WriteOption) (bool, error) {
	return s.Overwrite(message+"\n", opts...)
}

// Prepend inserts message at the start of the section.
func (s *Section) Prepend(message string, opts ...WriteOption) (bool, error) {
	if !s.placed {
		return false, ErrSectionNotPlaced
	}
	return s.out.PrependAt(s.position, message, opts...)
}

// PrependLn inserts message and a line break at the start of the section.
func (s *Section) PrependLn(message string, opts ...WriteOption) (bool, error) {
	return s.Prepend(message+"\n", opts...)
}

// LineBreak appends count line breaks to the section.
func (s *Section) LineBreak(count int, opts ...WriteOption) (bool, error) {
	if count < 0 {
		count = 0
	}
	return s.Write(strings.Repeat("\n", count), opts...)
}

// Clear empties the section.
func (s *Section) Clear(opts ...WriteOption) (bool, error) {
	return s.Overwrite("", opts...)
}

// BufferSplit partitions the output around the section.
func (s *Section) BufferSplit() (Split, error) {
	if !s.placed {
		return Split{}, ErrSectionNotPlaced
	}
	return s.out.BufferSplitAt(s.position)
}

// StartCursorPosition returns the position where the section begins.
func (s *Section) StartCursorPosition() (Cursor, error) {
	split, err := s.BufferSplit()
	if err != nil {
		return Cursor{}, err
	}
	return renderedCursor(split.Before...), nil
}

// TipCursorPosition returns the position where the section ends.
func (s *Section) TipCursorPosition() (Cursor, error) {
	split, err := s.BufferSplit()
	if err != nil {
		return Cursor{}, err
	}
	return renderedCursor(append(split.Before, split.Content)...), nil
}

// MoveCursorToStartPosition moves the cursor to where the section begins.
func (s *Section) MoveCursorToStartPosition() error {
	c, err := s.StartCursorPosition()
	if err != nil {
		return err
	}
	return s.out.MoveCursorToPosition(c.Line, c.Column)
}

// MoveCursorToTipPosition moves the cursor to where the section ends.
func (s *Section) MoveCursorToTipPosition() error {
	c, err := s.TipCursorPosition()
	if err != nil {
		return err
	}
	return s.out.MoveCursorToPosition(c.Line, c.Column)
}

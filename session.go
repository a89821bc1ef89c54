package console

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/joeycumines/go-console/debug"
	"github.com/joeycumines/go-console/markup"
)

type inputMode int

const (
	modeStandard inputMode = iota
	modeSecret
	modeAutocomplete
)

func (m inputMode) String() string {
	switch m {
	case modeStandard:
		return "standard"
	case modeSecret:
		return "secret"
	case modeAutocomplete:
		return "autocomplete"
	default:
		return "unknown"
	}
}

// session is the state of one answer being typed.
type session struct {
	q       *Question
	mode    inputMode
	written string
	matches []string
	// selected indexes matches, or is -1
	selected int
}

func newSession(q *Question, mode inputMode) *session {
	s := session{q: q, mode: mode, selected: -1}
	if mode == modeAutocomplete {
		s.matches = autocompleteMatches(q.autocomplete, "")
	}
	return &s
}

// readLine reads an answer from a device that is not a terminal.
func (q *Question) readLine() (string, error) {
	line, err := q.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	if mode := q.mode(); mode == modeAutocomplete && line != "" {
		if matches := autocompleteMatches(q.autocomplete, line); len(matches) != 0 {
			line += completion(line, matches[0])
		}
	}
	return line, nil
}

// readKeys runs the session until return is pressed or input ends.
func (q *Question) readKeys(s *session) (answer string, err error) {
	if raw, ok := q.in.(RawModeDevice); ok {
		if err := raw.EnterRawMode(); err != nil {
			return "", err
		}
		defer func() {
			if e := raw.ExitRawMode(); err == nil {
				err = e
			} else {
				debug.AssertNoError(e)
			}
		}()
	}
	if err := q.inputSection.MoveCursorToStartPosition(); err != nil {
		return "", err
	}

	for {
		b, err := q.in.ReadKey()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return "", err
		}
		ev := ClassifyKey(b)
		debug.Logger().Trace().
			Str("key", ev.Key.String()).
			Str("mode", s.mode.String()).
			Log("key")

		var done bool
		if s.mode == modeAutocomplete {
			done, err = s.handleAutocomplete(ev)
		} else {
			done, err = s.handleTyping(ev)
		}
		if err != nil {
			return "", err
		}
		if done {
			break
		}
	}
	return s.written, nil
}

func (s *session) handleTyping(ev KeyEvent) (bool, error) {
	switch ev.Key {
	case KeyContent:
		s.written += ev.Text
	case KeyBackspace:
		s.written = dropLastRune(s.written)
	case KeyReturn:
		if err := s.redraw(); err != nil {
			return false, err
		}
		return true, s.q.out.MoveCursorToTipPosition()
	default:
		return false, nil
	}
	if err := s.redraw(); err != nil {
		return false, err
	}
	return false, s.q.inputSection.MoveCursorToTipPosition()
}

func (s *session) handleAutocomplete(ev KeyEvent) (bool, error) {
	switch ev.Key {
	case KeyReturn:
		if match, ok := s.selection(); ok {
			s.written += completion(s.written, match)
		}
		if err := s.redrawPlain(); err != nil {
			return false, err
		}
		return true, s.q.out.MoveCursorToTipPosition()

	case KeyTab:
		match, ok := s.selection()
		if !ok {
			return false, nil
		}
		s.written += completion(s.written, match)
		s.refreshMatches(false)
		return false, s.redrawPlain()

	case KeyUp, KeyDown:
		if len(s.matches) == 0 {
			return false, nil
		}
		n := len(s.matches)
		switch {
		case ev.Key == KeyUp && s.selected < 0:
			s.selected = 0
		case ev.Key == KeyUp:
			s.selected = (s.selected + 1) % n
		case s.selected <= 0:
			s.selected = n - 1
		default:
			s.selected--
		}
		return false, s.redrawGhost(completion(s.written, s.matches[s.selected]))

	case KeyBackspace:
		if s.selected >= 0 {
			s.selected = -1
			return false, s.redrawPlain()
		}
		s.written = dropLastRune(s.written)
		s.refreshMatches(false)
		return false, s.redrawPlain()

	case KeyContent:
		s.written += ev.Text
		s.refreshMatches(true)
		if match, ok := s.selection(); ok {
			return false, s.redrawGhost(completion(s.written, match))
		}
		return false, s.redrawPlain()
	}
	return false, nil
}

// refreshMatches recomputes matches for what was written, selecting the
// first if selectFirst is set.
func (s *session) refreshMatches(selectFirst bool) {
	s.matches = autocompleteMatches(s.q.autocomplete, s.written)
	s.selected = -1
	if selectFirst && len(s.matches) != 0 {
		s.selected = 0
	}
}

func (s *session) selection() (string, bool) {
	if s.selected < 0 {
		return "", false
	}
	debug.Assert(s.selected < len(s.matches), "autocomplete selection out of range")
	if s.selected >= len(s.matches) {
		return "", false
	}
	return s.matches[s.selected], true
}

func (s *session) inputText() string {
	text := s.written
	if s.mode == modeSecret {
		text = strings.Repeat("*", utf8.RuneCountInString(text))
	}
	return strings.ReplaceAll(s.q.style.InputFormat, "%input%", text)
}

func (s *session) redraw() error {
	_, err := s.q.inputSection.Overwrite(s.inputText())
	return err
}

func (s *session) redrawPlain() error {
	if err := s.redraw(); err != nil {
		return err
	}
	return s.q.inputSection.MoveCursorToTipPosition()
}

// redrawGhost shows ghost after the answer, leaving the cursor before it.
func (s *session) redrawGhost(ghost string) error {
	text := s.inputText() + strings.ReplaceAll(s.q.style.AutocompleteFormat, "%autocomplete%", markup.Escape(ghost))
	if _, err := s.q.inputSection.Overwrite(text); err != nil {
		return err
	}
	if err := s.q.inputSection.MoveCursorToTipPosition(); err != nil {
		return err
	}
	tip := s.q.out.CursorPosition()
	column := tip.Column - utf8.RuneCountInString(ghost)
	if column < 0 {
		column = 0
	}
	return s.q.out.MoveCursorToPosition(tip.Line, column)
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

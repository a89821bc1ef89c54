package console

import (
	"fmt"
	"strings"

	"github.com/joeycumines/go-console/debug"
)

// Question asks for a line of input on an Output, reading keys from an
// InputDevice. Answers are echoed through sections of the output, so that
// they can be redrawn on every key.
//
// A Question is not safe for concurrent use.
type Question struct {
	out *Output
	in  InputDevice

	// interactive is false if questions must not be asked at all
	interactive bool
	// displayable is false if the input device is not a terminal, in which
	// case answers are read as lines, without display
	displayable bool

	style          QuestionStyle
	prompt         string
	hasPrompt      bool
	placeholder    string
	hasPlaceholder bool
	secret         bool
	autocomplete   AutocompleteSource

	displayed     bool
	placed        bool
	promptSection *Section
	inputSection  *Section
}

// QuestionOption configures a Question.
type QuestionOption func(q *Question)

// NonInteractive makes every Ask return no answer.
func NonInteractive() QuestionOption {
	return func(q *Question) {
		q.interactive = false
	}
}

// WithQuestionStyle sets the style used for display.
func WithQuestionStyle(style QuestionStyle) QuestionOption {
	return func(q *Question) {
		q.style = style
	}
}

// NewQuestion returns a Question displayed on out, reading from in.
func NewQuestion(out *Output, in InputDevice, opts ...QuestionOption) *Question {
	q := Question{
		out:         out,
		in:          in,
		interactive: true,
		style:       DefaultQuestionStyle(),
	}
	for _, o := range opts {
		o(&q)
	}
	q.displayable = q.interactive && in.IsInteractive()
	return &q
}

// Output returns the output the question is displayed on.
func (q *Question) Output() *Output { return q.out }

// Style returns the style used for display.
func (q *Question) Style() QuestionStyle { return q.style }

// SetStyle sets the style used for display.
func (q *Question) SetStyle(style QuestionStyle) { q.style = style }

// SetStyleName sets the style to one registered with RegisterQuestionStyle.
func (q *Question) SetStyleName(name string) error {
	style, ok := LookupQuestionStyle(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	q.style = style
	return nil
}

// SetPrompt sets the text displayed before the answer.
func (q *Question) SetPrompt(prompt string) {
	q.prompt = prompt
	q.hasPrompt = true
}

// SetPlaceholder sets the text displayed until something is typed.
func (q *Question) SetPlaceholder(placeholder string) {
	q.placeholder = placeholder
	q.hasPlaceholder = true
}

// EnableSecretTyping masks the answer as it is typed. It has no effect while
// autocomplete is set.
func (q *Question) EnableSecretTyping() { q.secret = true }

// DisableSecretTyping echoes the answer as it is typed.
func (q *Question) DisableSecretTyping() { q.secret = false }

// SecretTyping reports whether the answer is masked.
func (q *Question) SecretTyping() bool { return q.secret }

// SetAutocomplete sets the source of suggested answers, and disables secret
// typing.
func (q *Question) SetAutocomplete(src AutocompleteSource) error {
	if !validAutocompleteSource(src) {
		return ErrInvalidAutocompleteSource
	}
	q.autocomplete = src
	q.secret = false
	return nil
}

// ClearAutocomplete removes the source of suggested answers.
func (q *Question) ClearAutocomplete() { q.autocomplete = nil }

// PlaceHere reserves the current end of the output for the question, so
// that every Ask displays at the same place.
func (q *Question) PlaceHere() error {
	if q.promptSection == nil {
		q.promptSection = q.out.Section()
		q.inputSection = q.out.Section()
	}
	if err := q.promptSection.PlaceHere(); err != nil {
		return err
	}
	if err := q.inputSection.PlaceHere(); err != nil {
		return err
	}
	q.placed = true
	return nil
}

// Display shows the prompt and placeholder, if the question is displayable
// and not already displayed.
func (q *Question) Display() error {
	return q.display(nil)
}

// DisplayAt is Display, with every write made at verbosity v.
func (q *Question) DisplayAt(v Verbosity) error {
	return q.display(&v)
}

// Ask displays the question and reads an answer. The answer is trimmed of
// surrounding whitespace. It returns ok false if the question cannot be
// asked.
func (q *Question) Ask() (answer string, ok bool, err error) {
	return q.ask(nil)
}

// AskAt is Ask, unless the output does not allow verbosity v, in which case
// nothing is displayed or read and there is no answer.
func (q *Question) AskAt(v Verbosity) (answer string, ok bool, err error) {
	return q.ask(&v)
}

func (q *Question) ask(v *Verbosity) (string, bool, error) {
	if !q.interactive {
		return "", false, nil
	}
	if v != nil && !q.out.Verbosity().Allows(*v) {
		return "", false, nil
	}
	if err := q.display(v); err != nil {
		return "", false, err
	}

	mode := q.mode()
	debug.Logger().Debug().
		Str("mode", mode.String()).
		Bool("displayable", q.displayable).
		Log("ask")

	var (
		answer string
		err    error
	)
	if !q.displayable {
		answer, err = q.readLine()
	} else {
		answer, err = q.readKeys(newSession(q, mode))
	}
	q.displayed = false
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(answer), true, nil
}

func (q *Question) mode() inputMode {
	switch {
	case !emptyAutocompleteSource(q.autocomplete):
		return modeAutocomplete
	case q.secret:
		return modeSecret
	default:
		return modeStandard
	}
}

func (q *Question) display(v *Verbosity) error {
	if !q.displayable || q.displayed {
		return nil
	}
	var opts []WriteOption
	if v != nil {
		opts = append(opts, AtVerbosity(*v))
	}

	if q.hasPrompt {
		prompt := strings.ReplaceAll(q.style.PromptFormat, "%prompt%", q.prompt)
		var err error
		if q.placed {
			_, err = q.promptSection.Overwrite(prompt, opts...)
		} else {
			_, err = q.out.Write(prompt, opts...)
		}
		if err != nil {
			return err
		}
	}

	if q.placed {
		if _, err := q.inputSection.Clear(opts...); err != nil {
			return err
		}
	} else {
		q.inputSection = q.out.Section()
		if err := q.inputSection.PlaceHere(); err != nil {
			return err
		}
	}

	if q.hasPlaceholder {
		placeholder := strings.ReplaceAll(q.style.PlaceholderFormat, "%placeholder%", q.placeholder)
		if _, err := q.inputSection.Overwrite(placeholder, opts...); err != nil {
			return err
		}
	}

	q.displayed = true
	return nil
}

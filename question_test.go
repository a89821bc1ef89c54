package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joeycumines/go-console/debug"
)

const (
	testInputOpen  = `<cs background-color="dark_grey" color="white">`
	testInputClose = `</cs>`
)

type questionFixture struct {
	q       *Question
	out     *Output
	written *bytes.Buffer
}

// newTTYQuestion returns a question reading keys from input, as if typed on
// a terminal, displayed on a terminal output without a formatter.
func newTTYQuestion(input string, opts ...QuestionOption) questionFixture {
	var b bytes.Buffer
	out := NewOutput(&b, WithSink(SinkTerminal))
	in := NewInput(strings.NewReader(input), Interactive(true))
	return questionFixture{q: NewQuestion(out, in, opts...), out: out, written: &b}
}

func newPipeQuestion(input string) questionFixture {
	var b bytes.Buffer
	out := NewOutput(&b)
	return questionFixture{q: NewQuestion(out, NewInput(strings.NewReader(input))), out: out, written: &b}
}

func (f questionFixture) buffer() string {
	return strings.Join(f.out.Buffer(), "")
}

func (f questionFixture) ask(t *testing.T) string {
	t.Helper()
	answer, ok, err := f.q.Ask()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected an answer")
	}
	return answer
}

func TestQuestion_Display(t *testing.T) {
	f := newTTYQuestion("")
	f.q.SetPrompt("prompt")
	if err := f.q.Display(); err != nil {
		t.Fatal(err)
	}
	if got := f.written.String(); got != "prompt " {
		t.Errorf("written should be %q, got %q", "prompt ", got)
	}
	// displaying again is a no-op
	if err := f.q.Display(); err != nil {
		t.Fatal(err)
	}
	if got := f.buffer(); got != "prompt " {
		t.Errorf("buffer should be %q, got %q", "prompt ", got)
	}
}

func TestQuestion_PlaceholderDisplay(t *testing.T) {
	f := newTTYQuestion("\n")
	f.q.SetPrompt("prompt")
	f.q.SetPlaceholder("placeholder")

	if err := f.q.Display(); err != nil {
		t.Fatal(err)
	}
	if got, want := f.buffer(), `prompt <cs color="dark_grey">placeholder</cs>`; got != want {
		t.Errorf("buffer should be %q, got %q", want, got)
	}

	if answer := f.ask(t); answer != "" {
		t.Errorf("answer should be empty, got %q", answer)
	}
	if got, want := f.buffer(), "prompt "+testInputOpen+testInputClose; got != want {
		t.Errorf("buffer should be %q, got %q", want, got)
	}
}

func TestQuestion_AskVerbosity(t *testing.T) {
	f := newTTYQuestion("answer\n")
	f.q.SetPrompt("prompt")

	answer, ok, err := f.q.AskAt(VerbosityVerbose)
	if err != nil {
		t.Fatal(err)
	}
	if ok || answer != "" {
		t.Errorf("expected no answer, got %q, %v", answer, ok)
	}
	if f.written.Len() != 0 || len(f.out.Buffer()) != 0 {
		t.Errorf("nothing should be written, got %q", f.written.String())
	}

	f.out.SetVerbosity(VerbosityVerbose)
	answer, ok, err = f.q.AskAt(VerbosityVerbose)
	if err != nil || !ok || answer != "answer" {
		t.Errorf("expected answer, got %q, %v, %v", answer, ok, err)
	}
}

func TestQuestion_AskNonInteractive(t *testing.T) {
	f := newTTYQuestion("answer\n", NonInteractive())
	f.q.SetPrompt("prompt")
	answer, ok, err := f.q.Ask()
	if err != nil || ok || answer != "" {
		t.Errorf("expected no answer, got %q, %v, %v", answer, ok, err)
	}
	if f.written.Len() != 0 {
		t.Errorf("nothing should be written, got %q", f.written.String())
	}
}

func TestQuestion_AskStandard(t *testing.T) {
	f := newTTYQuestion("\x7fit\x7ftem\n")
	f.q.SetPrompt("prompt")
	if answer := f.ask(t); answer != "item" {
		t.Errorf("answer should be %q, got %q", "item", answer)
	}
	if got, want := f.buffer(), "prompt "+testInputOpen+"item"+testInputClose; got != want {
		t.Errorf("buffer should be %q, got %q", want, got)
	}
}

func TestQuestion_AskSecret(t *testing.T) {
	f := newTTYQuestion("\x7fit\x7ftem\n")
	f.q.SetPrompt("prompt")
	f.q.EnableSecretTyping()
	if answer := f.ask(t); answer != "item" {
		t.Errorf("answer should be %q, got %q", "item", answer)
	}
	if got, want := f.buffer(), "prompt "+testInputOpen+"****"+testInputClose; got != want {
		t.Errorf("buffer should be %q, got %q", want, got)
	}
	if strings.Contains(f.written.String(), "item") {
		t.Errorf("secret answer was echoed: %q", f.written.String())
	}
}

// redraws returns what was displayed after each clear, on a terminal
// output without a formatter.
func redraws(written string) []string {
	var shown []string
	for _, part := range strings.Split(written, "\x1b[0J")[1:] {
		if i := strings.IndexByte(part, '\x1b'); i >= 0 {
			part = part[:i]
		}
		shown = append(shown, part)
	}
	return shown
}

func TestQuestion_AskSecretMasks(t *testing.T) {
	f := newTTYQuestion("\x7fit\x7ftem\n")
	f.q.SetPrompt("prompt")
	f.q.EnableSecretTyping()
	if answer := f.ask(t); answer != "item" {
		t.Fatalf("answer should be %q, got %q", "item", answer)
	}

	var masks []int
	for _, shown := range redraws(f.written.String()) {
		if !strings.HasPrefix(shown, testInputOpen) || !strings.HasSuffix(shown, testInputClose) {
			t.Fatalf("unexpected redraw %q", shown)
		}
		mask := strings.TrimSuffix(strings.TrimPrefix(shown, testInputOpen), testInputClose)
		if strings.Trim(mask, "*") != "" {
			t.Fatalf("redraw is not masked: %q", shown)
		}
		masks = append(masks, len(mask))
	}
	// one redraw per key, return included
	if diff := cmp.Diff([]int{0, 1, 2, 1, 2, 3, 4, 4}, masks); diff != "" {
		t.Errorf("unexpected mask lengths (-want +got):\n%s", diff)
	}
}

func TestQuestion_AskTrimsAnswer(t *testing.T) {
	f := newTTYQuestion("  spaced \t\n")
	if answer := f.ask(t); answer != "spaced" {
		t.Errorf("answer should be %q, got %q", "spaced", answer)
	}
}

func TestQuestion_AskEndOfInput(t *testing.T) {
	f := newTTYQuestion("ab")
	if answer := f.ask(t); answer != "ab" {
		t.Errorf("answer should be %q, got %q", "ab", answer)
	}
}

func TestQuestion_AskNoTTY(t *testing.T) {
	for name, tc := range map[string]struct {
		input     string
		configure func(q *Question)
		want      string
	}{
		"standard": {input: "item\n", want: "item"},
		"secret": {
			input:     "item\n",
			configure: func(q *Question) { q.EnableSecretTyping() },
			want:      "item",
		},
		"autocomplete": {
			input: "it\n",
			configure: func(q *Question) {
				if err := q.SetAutocomplete(StaticList{"item1", "item2"}); err != nil {
					panic(err)
				}
			},
			want: "item1",
		},
		"autocomplete without match": {
			input: "other\n",
			configure: func(q *Question) {
				if err := q.SetAutocomplete(StaticList{"item1", "item2"}); err != nil {
					panic(err)
				}
			},
			want: "other",
		},
		"end of input": {input: "", want: ""},
	} {
		t.Run(name, func(t *testing.T) {
			f := newPipeQuestion(tc.input)
			f.q.SetPrompt("prompt")
			if tc.configure != nil {
				tc.configure(f.q)
			}
			if answer := f.ask(t); answer != tc.want {
				t.Errorf("answer should be %q, got %q", tc.want, answer)
			}
			if f.written.Len() != 0 {
				t.Errorf("nothing should be displayed, got %q", f.written.String())
			}
		})
	}
}

func TestQuestion_AskAutocomplete(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		want  string
	}{
		"typing":        {"\x7fit\x7f\x7ft\n", "item1"},
		"no match":      {"undefined\n", "undefined"},
		"empty":         {"\n", ""},
		"arrows":        {"\x1b[A\x1b[B\x1b[B\n", "item1"},
		"tab":           {"\x1b[B\t\n", "item2"},
		"ignored keys":  {"i\x1b[C\x1b[D\x01\n", "item1"},
		"discard ghost": {"it\x7f\n", "it"},
		"tab then type": {"i\tx\n", "item1x"},
	} {
		t.Run(name, func(t *testing.T) {
			f := newTTYQuestion(tc.input)
			f.q.SetPrompt("prompt")
			if err := f.q.SetAutocomplete(StaticList{"item1", "item2"}); err != nil {
				t.Fatal(err)
			}
			if answer := f.ask(t); answer != tc.want {
				t.Errorf("answer should be %q, got %q", tc.want, answer)
			}
			if got, want := f.buffer(), "prompt "+testInputOpen+tc.want+testInputClose; got != want {
				t.Errorf("buffer should be %q, got %q", want, got)
			}
		})
	}
}

func TestQuestion_AutocompleteGhost(t *testing.T) {
	f := newTTYQuestion("i")
	if err := f.q.SetAutocomplete(StaticList{"i<b>"}); err != nil {
		t.Fatal(err)
	}
	if answer := f.ask(t); answer != "i" {
		t.Errorf("answer should be %q, got %q", "i", answer)
	}
	want := testInputOpen + "i" + testInputClose + `<cs color="dark_grey">\<b></cs>`
	if got := f.buffer(); got != want {
		t.Errorf("buffer should be %q, got %q", want, got)
	}
	// the cursor is left before the suggestion
	tip := f.out.TipCursorPosition()
	if want := (Cursor{Line: 1, Column: tip.Column - 3}); f.out.CursorPosition() != want {
		t.Errorf("cursor should be %#v, got %#v", want, f.out.CursorPosition())
	}
}

func TestQuestion_AutocompleteWrapping(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		want  string
	}{
		"down selects last": {"\x1b[B\n", "c3"},
		"down wraps":        {"\x1b[B\x1b[B\x1b[B\x1b[B\n", "c3"},
		"up wraps":          {"\x1b[A\x1b[A\x1b[A\x1b[A\n", "c1"},
		"up then down":      {"\x1b[A\x1b[A\x1b[B\n", "c1"},
	} {
		t.Run(name, func(t *testing.T) {
			f := newTTYQuestion(tc.input)
			if err := f.q.SetAutocomplete(StaticList{"c1", "c2", "c3"}); err != nil {
				t.Fatal(err)
			}
			if answer := f.ask(t); answer != tc.want {
				t.Errorf("answer should be %q, got %q", tc.want, answer)
			}
		})
	}
}

func TestQuestion_AutocompleteResolver(t *testing.T) {
	var prefixes []string
	f := newTTYQuestion("gr\n")
	err := f.q.SetAutocomplete(Resolver(func(written string) []string {
		prefixes = append(prefixes, written)
		if strings.HasPrefix(written, "g") {
			return []string{"green", "grey"}
		}
		return []string{"blue"}
	}))
	if err != nil {
		t.Fatal(err)
	}
	if answer := f.ask(t); answer != "green" {
		t.Errorf("answer should be %q, got %q", "green", answer)
	}
	if got := strings.Join(prefixes, ","); got != ",g,gr" {
		t.Errorf("resolver should be called with %q, got %q", ",g,gr", got)
	}
}

func TestQuestion_PlacedDisplay(t *testing.T) {
	f := newTTYQuestion("answer1\nanswer2\n")
	f.q.SetPrompt("prompt")
	if err := f.q.PlaceHere(); err != nil {
		t.Fatal(err)
	}

	if answer := f.ask(t); answer != "answer1" {
		t.Errorf("answer should be %q, got %q", "answer1", answer)
	}
	if answer := f.ask(t); answer != "answer2" {
		t.Errorf("answer should be %q, got %q", "answer2", answer)
	}
	if got, want := f.buffer(), "prompt "+testInputOpen+"answer2"+testInputClose; got != want {
		t.Errorf("buffer should be %q, got %q", want, got)
	}
	if n := len(f.out.Buffer()); n != 2 {
		t.Errorf("expected 2 fragments, got %d", n)
	}
}

func TestQuestion_SetAutocomplete(t *testing.T) {
	q := newTTYQuestion("").q
	q.EnableSecretTyping()
	if err := q.SetAutocomplete(StaticList{"a"}); err != nil {
		t.Fatal(err)
	}
	if q.SecretTyping() {
		t.Error("autocomplete should disable secret typing")
	}
	for name, src := range map[string]AutocompleteSource{
		"nil":          nil,
		"nil resolver": Resolver(nil),
	} {
		if err := q.SetAutocomplete(src); !errors.Is(err, ErrInvalidAutocompleteSource) {
			t.Errorf("%s: expected ErrInvalidAutocompleteSource, got %v", name, err)
		}
	}
	if err := q.SetAutocomplete(StaticList{}); err != nil {
		t.Fatal(err)
	}
	if m := q.mode(); m != modeStandard {
		t.Errorf("an empty list should not autocomplete, got %v", m)
	}
	q.EnableSecretTyping()
	if m := q.mode(); m != modeSecret {
		t.Errorf("mode should be %v, got %v", modeSecret, m)
	}
	q.ClearAutocomplete()
	q.DisableSecretTyping()
	if m := q.mode(); m != modeStandard {
		t.Errorf("mode should be %v, got %v", modeStandard, m)
	}
}

func TestQuestion_Styles(t *testing.T) {
	q := newTTYQuestion("").q
	if err := q.SetStyleName("undefined"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}

	RegisterQuestionStyle("test-brackets", QuestionStyle{
		PromptFormat:       "[%prompt%] ",
		InputFormat:        "<%input%>",
		AutocompleteFormat: "(%autocomplete%)",
		PlaceholderFormat:  "{%placeholder%}",
	})
	if err := q.SetStyleName("test-brackets"); err != nil {
		t.Fatal(err)
	}
	if got := q.Style().InputFormat; got != "<%input%>" {
		t.Errorf("input format should be %q, got %q", "<%input%>", got)
	}
	if err := q.SetStyleName("default"); err != nil {
		t.Fatal(err)
	}
	if q.Style() != DefaultQuestionStyle() {
		t.Errorf("style should be the default, got %#v", q.Style())
	}

	f := newTTYQuestion("ok\n", WithQuestionStyle(QuestionStyle{PromptFormat: "%prompt%: ", InputFormat: "%input%"}))
	f.q.SetPrompt("name")
	if answer := f.ask(t); answer != "ok" {
		t.Errorf("answer should be %q, got %q", "ok", answer)
	}
	if got := f.buffer(); got != "name: ok" {
		t.Errorf("buffer should be %q, got %q", "name: ok", got)
	}
}

// rawDevice records raw mode transitions around scripted keys.
type rawDevice struct {
	keys       []string
	calls      []string
	err        error
	restoreErr error
}

func (d *rawDevice) ReadKey() ([]byte, error) {
	if len(d.keys) == 0 {
		if d.err != nil {
			return nil, d.err
		}
		return nil, io.EOF
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	d.calls = append(d.calls, "key")
	return []byte(k), nil
}

func (d *rawDevice) ReadLine() (string, error) { return "", io.EOF }
func (d *rawDevice) IsInteractive() bool       { return true }
func (d *rawDevice) EnterRawMode() error       { d.calls = append(d.calls, "raw"); return nil }
func (d *rawDevice) ExitRawMode() error        { d.calls = append(d.calls, "restore"); return d.restoreErr }

func TestQuestion_RawMode(t *testing.T) {
	d := &rawDevice{keys: []string{"a", "\r"}}
	out := NewOutput(io.Discard, WithSink(SinkTerminal))
	answer, ok, err := NewQuestion(out, d).Ask()
	if err != nil || !ok || answer != "a" {
		t.Fatalf("expected answer, got %q, %v, %v", answer, ok, err)
	}
	if got := strings.Join(d.calls, ","); got != "raw,key,key,restore" {
		t.Errorf("calls should be %q, got %q", "raw,key,key,restore", got)
	}

	boom := errors.New("boom")
	d = &rawDevice{err: boom}
	if _, _, err := NewQuestion(out, d).Ask(); !errors.Is(err, boom) {
		t.Errorf("expected read error, got %v", err)
	}
	if got := strings.Join(d.calls, ","); got != "raw,restore" {
		t.Errorf("calls should be %q, got %q", "raw,restore", got)
	}
}

func TestQuestion_RawModeRestoreFailure(t *testing.T) {
	out := NewOutput(io.Discard, WithSink(SinkTerminal))
	stuck := errors.New("stuck")

	d := &rawDevice{keys: []string{"a", "\r"}, restoreErr: stuck}
	if _, _, err := NewQuestion(out, d).Ask(); !errors.Is(err, stuck) {
		t.Errorf("expected restore error, got %v", err)
	}

	// a read error takes precedence, the restore failure is asserted
	defer debug.SetAssertPanic(true)()
	d = &rawDevice{err: errors.New("boom"), restoreErr: stuck}
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_, _, _ = NewQuestion(out, d).Ask()
	}()
	if recovered != stuck {
		t.Errorf("expected panic with %v, got %v", stuck, recovered)
	}
}

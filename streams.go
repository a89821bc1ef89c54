package console

import (
	"errors"
	"io"
	"os"
	"slices"

	"github.com/mattn/go-colorable"

	"github.com/joeycumines/go-console/debug"
	"github.com/joeycumines/go-console/markup"
)

// Streams bundles the input and the two outputs of a command. When both
// outputs reach the same terminal, or the same file, they share one
// BufferState, so that their interleaved writes render coherently.
type Streams struct {
	Input InputDevice
	Out   *Output
	Err   *Output

	interactive bool
	// tty is the output opened on the input's terminal, see Question
	tty      *Output
	ttyClose io.Closer
}

// NewStreams returns Streams over the given devices. The options apply to
// both outputs.
func NewStreams(in InputDevice, stdout, stderr io.Writer, opts ...OutputOption) *Streams {
	out := NewOutput(stdout, opts...)
	errOpts := opts
	if shareable(stdout, stderr) {
		errOpts = slices.Concat(opts, []OutputOption{WithBufferState(out.BufferState())})
	}
	return newStreams(in, out, NewOutput(stderr, errOpts...))
}

// NewStandardStreams returns Streams over os.Stdin, os.Stdout and os.Stderr,
// rendering markup with the markup package. Options are applied after the
// defaults.
func NewStandardStreams(opts ...OutputOption) *Streams {
	base := slices.Concat([]OutputOption{WithFormatter(markup.New())}, opts)
	outOpts := slices.Concat([]OutputOption{WithSink(DetectSink(os.Stdout))}, base)
	out := NewOutput(colorable.NewColorable(os.Stdout), outOpts...)
	errOpts := slices.Concat([]OutputOption{WithSink(DetectSink(os.Stderr))}, base)
	if shareable(os.Stdout, os.Stderr) {
		errOpts = append(errOpts, WithBufferState(out.BufferState()))
	}
	return newStreams(NewInput(os.Stdin), out, NewOutput(colorable.NewColorable(os.Stderr), errOpts...))
}

func newStreams(in InputDevice, out, err *Output) *Streams {
	debug.Logger().Debug().
		Str("out", out.Sink().String()).
		Str("err", err.Sink().String()).
		Bool("shared", out.BufferState() == err.BufferState()).
		Log("new streams")
	return &Streams{
		Input:       in,
		Out:         out,
		Err:         err,
		interactive: true,
	}
}

// shareable reports whether two writers reach the same device: both
// terminals, or the same regular file.
func shareable(a, b io.Writer) bool {
	if DetectSink(a) == SinkTerminal && DetectSink(b) == SinkTerminal {
		return true
	}
	return sameFile(a, b)
}

// IsInteractive reports whether questions may be asked.
func (s *Streams) IsInteractive() bool { return s.interactive }

// SetInteractive allows or prevents questions.
func (s *Streams) SetInteractive(interactive bool) { s.interactive = interactive }

// SetVerbosity sets the verbosity of both outputs.
func (s *Streams) SetVerbosity(v Verbosity) {
	s.Out.SetVerbosity(v)
	s.Err.SetVerbosity(v)
}

// Question returns a new Question reading from Input. It is displayed on
// Out if that is a terminal, else on Err if that is a terminal, else on the
// terminal Input reads from.
func (s *Streams) Question(opts ...QuestionOption) *Question {
	if !s.interactive {
		opts = slices.Concat([]QuestionOption{NonInteractive()}, opts)
	}
	return NewQuestion(s.questionOutput(), s.Input, opts...)
}

func (s *Streams) questionOutput() *Output {
	if !s.interactive || !s.Input.IsInteractive() || s.Out.Sink() == SinkTerminal {
		return s.Out
	}
	if s.Err.Sink() == SinkTerminal {
		return s.Err
	}
	if s.tty != nil {
		return s.tty
	}
	in, ok := s.Input.(*Input)
	if !ok || in.path == "" {
		return s.Out
	}
	f, err := os.OpenFile(in.path, os.O_WRONLY, 0)
	if err != nil {
		debug.Logger().Debug().Err(err).Str("path", in.path).Log("failed to open input terminal for writing")
		return s.Out
	}
	s.tty = NewOutput(f, WithFormatter(s.Out.Formatter()), WithVerbosity(s.Out.Verbosity()))
	s.ttyClose = f
	return s.tty
}

// Close releases the terminal opened for questions, if any, and closes
// Input if it is an io.Closer.
func (s *Streams) Close() error {
	var err error
	if s.ttyClose != nil {
		err = s.ttyClose.Close()
		s.ttyClose = nil
		s.tty = nil
	}
	if c, ok := s.Input.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

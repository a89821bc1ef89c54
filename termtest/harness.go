//go:build unix

package termtest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	goconsole "github.com/joeycumines/go-console"
	"github.com/joeycumines/go-console/markup"
)

// Harness runs questions in-process, against the slave side of a PTY pair.
// The slave stays in character-at-a-time mode for the life of the harness,
// so keys may be sent as soon as a prompt is visible.
type Harness struct {
	console *Console
	pts     *os.File
	saved   *unix.Termios
	streams *goconsole.Streams
	cfg     *harnessConfig

	closeOnce sync.Once
	closeErr  error
}

// Answer is the result of Harness.Ask.
type Answer struct {
	Text string
	OK   bool
	Err  error
}

// NewHarness opens a PTY pair and binds console streams to its slave.
// Output is rendered with the markup package unless WithOutputOptions says
// otherwise.
func NewHarness(ctx context.Context, opts ...HarnessOption) (*Harness, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := resolveHarnessOptions(opts)
	if err != nil {
		return nil, err
	}

	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(ptm, &pty.Winsize{Rows: cfg.rows, Cols: cfg.cols}); err != nil {
		_ = pts.Close()
		_ = ptm.Close()
		return nil, fmt.Errorf("failed to set pty size: %w", err)
	}
	saved, err := makeRaw(pts)
	if err != nil {
		_ = pts.Close()
		_ = ptm.Close()
		return nil, fmt.Errorf("failed to set pty to raw mode: %w", err)
	}

	outOpts := slices.Concat([]goconsole.OutputOption{goconsole.WithFormatter(markup.New())}, cfg.outputOptions)
	return &Harness{
		console: newConsole(ptm, nil, cfg.defaultTimeout, func() {}, false),
		pts:     pts,
		saved:   saved,
		streams: goconsole.NewStreams(rawInput{goconsole.NewInput(pts)}, pts, pts, outOpts...),
		cfg:     cfg,
	}, nil
}

// makeRaw disables echo and line buffering on f, returning the attributes
// it replaced.
func makeRaw(f *os.File) (*unix.Termios, error) {
	t, err := termios.Tcgetattr(f.Fd())
	if err != nil {
		return nil, err
	}
	saved := *t
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.ECHONL
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(f.Fd(), termios.TCSANOW, t); err != nil {
		return nil, err
	}
	return &saved, nil
}

// rawInput hides the raw mode switching of the wrapped input, the harness
// manages the mode itself.
type rawInput struct {
	in *goconsole.Input
}

func (r rawInput) ReadKey() ([]byte, error)  { return r.in.ReadKey() }
func (r rawInput) ReadLine() (string, error) { return r.in.ReadLine() }
func (r rawInput) IsInteractive() bool       { return r.in.IsInteractive() }

// Console returns the user's side of the terminal.
func (h *Harness) Console() *Console { return h.console }

// Streams returns the streams bound to the terminal. Out and Err share one
// buffer.
func (h *Harness) Streams() *goconsole.Streams { return h.streams }

// Output is shorthand for Streams().Out.
func (h *Harness) Output() *goconsole.Output { return h.streams.Out }

// Question returns a new question on the terminal.
func (h *Harness) Question(opts ...goconsole.QuestionOption) *goconsole.Question {
	return h.streams.Question(opts...)
}

// Ask runs q.Ask in the background. Streams must not be used until the
// answer is received.
func (h *Harness) Ask(q *goconsole.Question) <-chan Answer {
	ch := make(chan Answer, 1)
	go func() {
		text, ok, err := q.Ask()
		ch <- Answer{Text: text, OK: ok, Err: err}
	}()
	return ch
}

// AwaitAnswer waits for an answer from Ask, for at most the default timeout
// if ctx has no deadline.
func (h *Harness) AwaitAnswer(ctx context.Context, ch <-chan Answer) (Answer, error) {
	if _, ok := ctx.Deadline(); !ok && h.cfg.defaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.defaultTimeout)
		defer cancel()
	}
	select {
	case <-ctx.Done():
		return Answer{}, fmt.Errorf("waiting for answer: %w\noutput: %q", ctx.Err(), h.console.String())
	case a := <-ch:
		return a, nil
	}
}

// Close restores and closes the slave, then the console. A pending Ask
// fails with a read error.
func (h *Harness) Close() error {
	h.closeOnce.Do(func() {
		var errs []error
		if h.saved != nil {
			_ = termios.Tcsetattr(h.pts.Fd(), termios.TCSANOW, h.saved)
		}
		// slave before master, so the reader loop sees EIO
		if err := h.pts.Close(); err != nil && !strings.Contains(err.Error(), "file already closed") {
			errs = append(errs, fmt.Errorf("failed to close pts: %w", err))
		}
		if err := h.console.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close console: %w", err))
		}
		select {
		case <-h.console.done:
		case <-time.After(consoleWaitOnDoneCloseTimeout):
			errs = append(errs, errConsoleReaderLoopTimeout)
		}
		h.closeErr = errors.Join(errs...)
	})
	return h.closeErr
}

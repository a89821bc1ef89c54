//go:build unix

package termtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const (
	consoleWaitOnDoneCloseTimeout = time.Second

	// keyGap separates typed keys, so that each usually arrives in its own
	// read on the slave side.
	keyGap = time.Millisecond
)

var errConsoleReaderLoopTimeout = errors.New("timeout waiting for console reader loop to exit")

// Console is the user's side of a PTY: everything displayed is captured, and
// keys are sent as a terminal would. It is safe for concurrent use.
type Console struct {
	ptm            *os.File
	proc           *process
	defaultTimeout time.Duration
	stop           context.CancelFunc
	waitReader     bool

	mu  sync.Mutex
	out []byte
	// changed is closed and replaced whenever out grows, and is nil once
	// the reader has stopped
	changed chan struct{}
	closed  bool

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Snapshot marks a point in the captured output.
type Snapshot struct {
	offset int
}

// NewConsole starts a process attached to a new PTY.
func NewConsole(ctx context.Context, opts ...ConsoleOption) (*Console, error) {
	cfg, err := resolveConsoleOptions(opts)
	if err != nil {
		return nil, err
	}
	if cfg.cmdName == "" {
		return nil, errors.New("no command specified: use WithCommand(cmdName, args...)")
	}
	ctx, cancel := context.WithCancel(ctx)
	proc, ptm, err := startProcess(ctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	return newConsole(ptm, proc, cfg.defaultTimeout, cancel, true), nil
}

func newConsole(ptm *os.File, proc *process, timeout time.Duration, stop context.CancelFunc, waitReader bool) *Console {
	c := &Console{
		ptm:            ptm,
		proc:           proc,
		defaultTimeout: timeout,
		stop:           stop,
		waitReader:     waitReader,
		changed:        make(chan struct{}),
		done:           make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Console) readLoop() {
	defer close(c.done)
	buf := make([]byte, 4096)
	for {
		n, err := c.ptm.Read(buf)
		if n > 0 {
			c.record(buf[:n], false)
		}
		if err != nil {
			c.record(nil, true)
			return
		}
	}
}

func (c *Console) record(p []byte, last bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = append(c.out, p...)
	close(c.changed)
	if last {
		c.changed = nil
	} else {
		c.changed = make(chan struct{})
	}
}

// view returns the output after s, and a channel closed on the next change.
func (c *Console) view(s Snapshot) (string, <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.offset > len(c.out) {
		s.offset = 0
	}
	return string(c.out[s.offset:]), c.changed
}

func (c *Console) watch() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

// Snapshot marks the current end of the output. Take it immediately before
// the action whose output is asserted.
func (c *Console) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{offset: len(c.out)}
}

// String returns all output captured so far.
func (c *Console) String() string {
	text, _ := c.view(Snapshot{})
	return text
}

// Await blocks until the output since the snapshot satisfies cond, or ctx
// is done.
func (c *Console) Await(ctx context.Context, since Snapshot, cond Condition) error {
	for {
		text, changed := c.view(since)
		if cond(text) {
			return nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			if text, _ := c.view(since); cond(text) {
				return nil
			}
			return ctx.Err()
		}
	}
}

// Expect is Await bounded by the default timeout when ctx has no deadline.
// The error includes the output that was seen.
func (c *Console) Expect(ctx context.Context, since Snapshot, cond Condition, description string) error {
	if _, ok := ctx.Deadline(); !ok && c.defaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.defaultTimeout)
		defer cancel()
	}
	if err := c.Await(ctx, since, cond); err != nil {
		seen, _ := c.view(since)
		return fmt.Errorf("waiting for %s: %w\nseen: %q", description, err, seen)
	}
	return nil
}

// WaitIdle returns once no output has arrived for quiet. It depends on
// timing, prefer Expect.
func (c *Console) WaitIdle(ctx context.Context, quiet time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		changed := c.watch()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case <-changed:
			timer.Reset(quiet)
		}
	}
}

// Write sends raw bytes to the terminal.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return 0, io.ErrClosedPipe
	}
	return c.ptm.Write(p)
}

// WriteString sends a raw string to the terminal.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Send types the named keys, such as "enter", "up" or "backspace".
func (c *Console) Send(keys ...string) error {
	for _, k := range keys {
		seq, err := lookupKey(k)
		if err != nil {
			return err
		}
		if err := c.typeSeq(seq); err != nil {
			return err
		}
	}
	return nil
}

// SendText types text one character at a time.
func (c *Console) SendText(text string) error {
	for _, r := range text {
		if err := c.typeSeq(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// SendLine types text followed by enter.
func (c *Console) SendLine(text string) error {
	if err := c.SendText(text); err != nil {
		return err
	}
	return c.Send("enter")
}

func (c *Console) typeSeq(seq string) error {
	if _, err := c.WriteString(seq); err != nil {
		return err
	}
	time.Sleep(keyGap)
	return nil
}

// WaitExit waits for the process to exit, returning its exit code.
func (c *Console) WaitExit(ctx context.Context) (int, error) {
	if c.proc == nil {
		return -1, errors.New("no command to wait for")
	}
	return c.proc.wait(ctx)
}

// Close ends the session, killing the process if there is one.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		c.stop()

		errs := []error{c.ptm.Close()}
		if c.proc != nil {
			c.proc.kill()
		}
		if c.waitReader {
			select {
			case <-c.done:
			case <-time.After(consoleWaitOnDoneCloseTimeout):
				errs = append(errs, errConsoleReaderLoopTimeout)
			}
		}
		if err := errors.Join(errs...); err != nil {
			c.closeErr = fmt.Errorf("closing console: %w", err)
		}
	})
	return c.closeErr
}

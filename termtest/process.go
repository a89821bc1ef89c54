//go:build unix

package termtest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/creack/pty"
)

// process is a command running with a PTY as its controlling terminal.
type process struct {
	cmd *exec.Cmd
	// exited is closed after the command has been reaped, code and err are
	// set before that
	exited chan struct{}
	code   int
	err    error
}

func startProcess(ctx context.Context, cfg *consoleConfig) (*process, *os.File, error) {
	cmd := exec.CommandContext(ctx, cfg.cmdName, cfg.args...)
	cmd.Dir = cfg.dir
	cmd.Env = append(os.Environ(), cfg.env...)
	cmd.Env = append(cmd.Env,
		"TERM=xterm-256color",
		"COLUMNS="+strconv.Itoa(int(cfg.cols)),
		"LINES="+strconv.Itoa(int(cfg.rows)),
	)

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: cfg.rows, Cols: cfg.cols})
	if err != nil {
		return nil, nil, fmt.Errorf("starting %s on a pty: %w", cfg.cmdName, err)
	}
	p := &process{cmd: cmd, exited: make(chan struct{})}
	go p.reap()
	return p, ptm, nil
}

func (p *process) reap() {
	defer close(p.exited)
	p.err = p.cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case p.err == nil:
	case errors.As(p.err, &exitErr):
		p.code = exitErr.ExitCode()
	default:
		p.code = -1
	}
}

func (p *process) wait(ctx context.Context) (int, error) {
	select {
	case <-p.exited:
		return p.code, p.err
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

// kill stops the command if it is still running and waits for it to be
// reaped.
func (p *process) kill() {
	select {
	case <-p.exited:
		return
	default:
	}
	_ = p.cmd.Process.Kill()
	<-p.exited
}

//go:build unix

package term

import (
	"errors"
	"sync"
	"testing"

	"github.com/creack/pty"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// primeSaved makes the next getOriginalTermios call return the given state
// without touching any terminal.
func primeSaved(t *testing.T, fd int, v unix.Termios, err error) {
	t.Helper()
	forgetSaved()
	t.Cleanup(forgetSaved)
	saveTermiosFD = fd
	saveTermios = v
	saveTermiosErr = err
	saveTermiosOnce.Do(func() {})
}

func forgetSaved() {
	saveTermiosOnce = sync.Once{}
	saveTermiosErr = nil
	saveTermiosFD = 0
	saveTermios = unix.Termios{}
}

func TestGetOriginalTermios_copy(t *testing.T) {
	primeSaved(t, 7, unix.Termios{Iflag: 1, Oflag: 2, Lflag: 3}, nil)

	v, err := getOriginalTermios(99)
	if err != nil {
		t.Fatal(err)
	}
	if *v != saveTermios {
		t.Fatalf("got %#v, want %#v", *v, saveTermios)
	}
	v.Lflag = 0
	if saveTermios.Lflag != 3 {
		t.Error("saved state changed through the returned value")
	}
	if saveTermiosFD != 7 {
		t.Errorf("saved fd replaced by a later call: %d", saveTermiosFD)
	}
}

func TestGetOriginalTermios_badFD(t *testing.T) {
	forgetSaved()
	t.Cleanup(forgetSaved)
	if _, err := getOriginalTermios(-1); err == nil {
		t.Fatal("expected an error")
	}
	if saveTermiosErr == nil {
		t.Error("error not remembered")
	}
}

func TestRawFunctions_errors(t *testing.T) {
	boom := errors.New("boom")
	for name, tc := range map[string]struct {
		err error
		fn  func() error
	}{
		"set raw saved error":    {boom, func() error { return SetRaw(3) }},
		"restore saved error":    {boom, Restore},
		"restore fd saved error": {boom, func() error { return RestoreFD(3) }},
		"set raw bad fd":         {nil, func() error { return SetRaw(-1) }},
		"restore bad fd":         {nil, Restore},
		"restore fd bad fd":      {nil, func() error { return RestoreFD(-1) }},
	} {
		t.Run(name, func(t *testing.T) {
			primeSaved(t, -1, unix.Termios{}, tc.err)
			err := tc.fn()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestSetRaw_pty(t *testing.T) {
	forgetSaved()
	t.Cleanup(forgetSaved)

	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptm.Close()
	defer pts.Close()
	fd := int(pts.Fd())

	if err := SetRaw(fd); err != nil {
		t.Fatal(err)
	}
	v, err := termios.Tcgetattr(uintptr(fd))
	if err != nil {
		t.Fatal(err)
	}
	if v.Lflag&(unix.ECHO|unix.ICANON) != 0 {
		t.Errorf("echo or canonical mode still set: %#x", v.Lflag)
	}
	if v.Lflag&unix.ISIG == 0 {
		t.Error("signal generation was disabled")
	}

	if err := RestoreFD(fd); err != nil {
		t.Fatal(err)
	}
	v, err = termios.Tcgetattr(uintptr(fd))
	if err != nil {
		t.Fatal(err)
	}
	if v.Lflag != saveTermios.Lflag {
		t.Errorf("lflag %#x, want %#x", v.Lflag, saveTermios.Lflag)
	}
}

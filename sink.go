package console

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// SinkKind is the kind of device an Output writes to, which decides how
// edits to earlier output are rendered.
type SinkKind int

const (
	// SinkOther is a pipe or any writer of unknown kind: edits are appended.
	SinkOther SinkKind = iota
	// SinkTerminal is an interactive terminal: edits move the cursor and
	// redraw in place.
	SinkTerminal
	// SinkSeekableFile is a regular file: edits rewrite the whole file.
	SinkSeekableFile
)

func (k SinkKind) String() string {
	switch k {
	case SinkTerminal:
		return "terminal"
	case SinkSeekableFile:
		return "file"
	default:
		return "other"
	}
}

type fdWriter interface {
	Fd() uintptr
}

// fileSink is what a SinkSeekableFile writer must support, *os.File does.
type fileSink interface {
	io.Writer
	io.Seeker
	Truncate(size int64) error
}

// DetectSink inspects w to find the kind of device it writes to.
func DetectSink(w io.Writer) SinkKind {
	if f, ok := w.(fdWriter); ok && isTerminalFD(f.Fd()) {
		return SinkTerminal
	}
	if f, ok := w.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
			return SinkSeekableFile
		}
	}
	return SinkOther
}

func isTerminalFD(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// sameFile reports whether a and b are both regular files at the same path.
func sameFile(a, b io.Writer) bool {
	fa, ok := a.(*os.File)
	if !ok {
		return false
	}
	fb, ok := b.(*os.File)
	if !ok {
		return false
	}
	ia, err := fa.Stat()
	if err != nil || !ia.Mode().IsRegular() {
		return false
	}
	ib, err := fb.Stat()
	if err != nil || !ib.Mode().IsRegular() {
		return false
	}
	return os.SameFile(ia, ib)
}

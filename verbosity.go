package console

import (
	"fmt"
	"strings"
)

// Verbosity is the amount of output a stream produces. Every write carries a
// required verbosity, and only happens if it is less than or equal to the
// verbosity configured on the stream.
type Verbosity int

const (
	VerbositySilent  Verbosity = -2
	VerbosityQuiet   Verbosity = -1
	VerbosityNormal  Verbosity = 0
	VerbosityVerbose Verbosity = 1
	VerbosityDebug   Verbosity = 2
)

// Allows reports whether an operation requiring the given verbosity may run
// at verbosity v.
func (v Verbosity) Allows(required Verbosity) bool {
	return required <= v
}

func (v Verbosity) String() string {
	switch v {
	case VerbositySilent:
		return "silent"
	case VerbosityQuiet:
		return "quiet"
	case VerbosityNormal:
		return "normal"
	case VerbosityVerbose:
		return "verbose"
	case VerbosityDebug:
		return "debug"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

// ParseVerbosity parses one of silent, quiet, normal, verbose or debug.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return VerbositySilent, nil
	case "quiet":
		return VerbosityQuiet, nil
	case "", "normal":
		return VerbosityNormal, nil
	case "verbose":
		return VerbosityVerbose, nil
	case "debug":
		return VerbosityDebug, nil
	default:
		return VerbosityNormal, fmt.Errorf("console: unknown verbosity %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verbosity) UnmarshalText(text []byte) error {
	parsed, err := ParseVerbosity(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v Verbosity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

package console

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// ConfigPrefix is the prefix of the environment variables read by
// LoadConfig.
const ConfigPrefix = "CONSOLE"

// FormatMode decides whether markup is rendered as styling.
type FormatMode int

const (
	// FormatAuto styles terminal output only.
	FormatAuto FormatMode = iota
	// FormatAlways styles all output.
	FormatAlways
	// FormatNever strips markup from all output.
	FormatNever
)

func (m FormatMode) String() string {
	switch m {
	case FormatAuto:
		return "auto"
	case FormatAlways:
		return "always"
	case FormatNever:
		return "never"
	default:
		return fmt.Sprintf("FormatMode(%d)", int(m))
	}
}

// ParseFormatMode parses one of auto, always or never.
func ParseFormatMode(s string) (FormatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "always":
		return FormatAlways, nil
	case "never":
		return FormatNever, nil
	}
	return 0, fmt.Errorf("console: invalid format mode: %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FormatMode) UnmarshalText(text []byte) error {
	parsed, err := ParseFormatMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m FormatMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Config is the console configuration read from the environment, e.g.
// CONSOLE_VERBOSITY=verbose.
type Config struct {
	Verbosity     Verbosity  `default:"normal"`
	NoInteraction bool       `split_words:"true"`
	Format        FormatMode `default:"auto"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process(ConfigPrefix, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Apply configures s.
func (c Config) Apply(s *Streams) {
	s.SetVerbosity(c.Verbosity)
	s.SetInteractive(!c.NoInteraction)
	for _, o := range [...]*Output{s.Out, s.Err} {
		switch c.Format {
		case FormatAlways:
			o.EnableFormatting()
		case FormatNever:
			o.DisableFormatting()
		default:
			o.ResetFormatting()
		}
	}
}

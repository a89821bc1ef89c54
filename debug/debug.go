// Package debug provides opt-in diagnostics: a structured log file and
// assertions, both configured through environment variables.
package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix      = "GO_CONSOLE"
	envEnableLog   = "GO_CONSOLE_ENABLE_LOG"
	envLogFile     = "GO_CONSOLE_LOG_FILE"
	envLogLevel    = "GO_CONSOLE_LOG_LEVEL"
	envAssertPanic = "GO_CONSOLE_ASSERT_PANIC"

	defaultLogFile = "go-console-debug.log"
)

type settings struct {
	EnableLog   bool   `envconfig:"ENABLE_LOG"`
	LogFile     string `envconfig:"LOG_FILE"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`
	AssertPanic bool   `envconfig:"ASSERT_PANIC"`
}

var (
	enableAssert bool
	logger       *logiface.Logger[*stumpy.Event]
	logfile      *os.File
)

func init() {
	loadAssertEnv()
	loadLoggerEnv()
}

func loadSettings() settings {
	var s settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		fmt.Fprintf(os.Stderr, "[go-console] ignoring invalid debug settings: %v\n", err)
	}
	return s
}

func loadAssertEnv() {
	enableAssert = loadSettings().AssertPanic
}

func loadLoggerEnv() {
	s := loadSettings()
	path := s.LogFile
	if path == "" && s.EnableLog {
		path = defaultLogFile
	}
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[go-console] failed to open debug log %q: %v\n", path, err)
		return
	}
	logfile = f
	logger = newLogger(f, ParseLevel(s.LogLevel))
}

func newLogger(f *os.File, level logiface.Level) *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(f),
			stumpy.WithLevelField("lvl"),
		),
		stumpy.L.WithLevel(level),
	)
}

// ParseLevel maps a level keyword (as printed by logiface.Level.String, plus
// a few common aliases) to a logiface.Level. Unknown values map to debug.
func ParseLevel(s string) logiface.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled", "off", "none":
		return logiface.LevelDisabled
	case "emerg", "emergency", "panic":
		return logiface.LevelEmergency
	case "alert":
		return logiface.LevelAlert
	case "crit", "critical", "fatal":
		return logiface.LevelCritical
	case "err", "error":
		return logiface.LevelError
	case "warning", "warn":
		return logiface.LevelWarning
	case "notice":
		return logiface.LevelNotice
	case "info", "informational":
		return logiface.LevelInformational
	case "trace":
		return logiface.LevelTrace
	default:
		return logiface.LevelDebug
	}
}

// Logger returns the process wide diagnostics logger, which is nil (and
// therefore a no-op) unless logging was enabled via the environment.
func Logger() *logiface.Logger[*stumpy.Event] {
	return logger
}

// Close closes the debug log file, if any.
func Close() {
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
	}
	logger = nil
}

// Log writes a debug message, if logging is enabled.
func Log(msg string) {
	logger.Debug().Log(msg)
}

// SetAssertPanic overrides whether failed assertions panic, returning a
// function that reinstates the previous setting.
func SetAssertPanic(enable bool) (restore func()) {
	prev := enableAssert
	enableAssert = enable
	return func() { enableAssert = prev }
}

// Assert raises a panic (or logs to stderr) if the given condition is false.
func Assert(cond bool, msg interface{}) {
	if cond {
		return
	}
	if enableAssert {
		panic(msg)
	}
	writeWithSync(2, "[ASSERT] "+toString(msg))
}

func toString(v interface{}) string {
	switch a := v.(type) {
	case func() string:
		return a()
	case string:
		return a
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AssertNoError raises a panic (or logs to stderr) if the error is not nil.
func AssertNoError(err error) {
	if err == nil {
		return
	}
	if enableAssert {
		panic(err)
	}
	logger.Err().Err(err).Log("assertion failed")
	writeWithSync(2, "[ASSERT] "+err.Error())
}

func writeWithSync(fd int, msg string) {
	// Terminal modes may be raw, so write a full line ending.
	if !strings.HasSuffix(msg, "\n") {
		msg += "\r\n"
	}
	var f *os.File
	switch fd {
	case 1:
		f = os.Stdout
	default:
		f = os.Stderr
	}
	_, _ = f.WriteString(msg)
	_ = f.Sync()
}

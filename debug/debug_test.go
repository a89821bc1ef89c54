package debug

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
)

func cleanState(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		enableAssert = false
		Close()
	})
}

func TestAssertions(t *testing.T) {
	for name, tc := range map[string]struct {
		panics bool
		call   func()
	}{
		"assert true":            {false, func() { Assert(true, "fine") }},
		"assert false":           {true, func() { Assert(false, "broken") }},
		"assert lazy message":    {true, func() { Assert(false, func() string { return "lazy" }) }},
		"no error":               {false, func() { AssertNoError(nil) }},
		"error":                  {true, func() { AssertNoError(os.ErrClosed) }},
		"wrapped error":          {true, func() { AssertNoError(errors.Join(os.ErrClosed)) }},
		"assert false no logger": {true, func() { Close(); Assert(false, "x") }},
	} {
		t.Run(name, func(t *testing.T) {
			cleanState(t)
			enableAssert = true
			var recovered any
			func() {
				defer func() { recovered = recover() }()
				tc.call()
			}()
			if (recovered != nil) != tc.panics {
				t.Errorf("panicked=%v, want %v (%v)", recovered != nil, tc.panics, recovered)
			}
		})
	}
}

func TestAssertions_disabled(t *testing.T) {
	cleanState(t)
	// both only report on stderr
	Assert(false, "reported")
	AssertNoError(os.ErrClosed)
}

func TestLogger_disabled(t *testing.T) {
	cleanState(t)
	Close()
	if Logger() != nil {
		t.Fatal("logger should be nil once closed")
	}
	Log("dropped")
	Logger().Info().Str("k", "v").Log("dropped")
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Close()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestLogger_file(t *testing.T) {
	cleanState(t)
	path := filepath.Join(t.TempDir(), "console.log")
	t.Setenv(envLogFile, path)
	loadLoggerEnv()
	if Logger() == nil {
		t.Fatal("logger not enabled")
	}

	Log("started")
	Logger().Debug().Str("kind", "prepend").Int("line", 2).Log("splice")
	out := readLog(t, path)

	for _, want := range []string{
		`"msg":"started"`,
		`"msg":"splice"`,
		`"kind":"prepend"`,
		`"lvl":"debug"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
}

func TestLogger_level(t *testing.T) {
	cleanState(t)
	path := filepath.Join(t.TempDir(), "console.log")
	t.Setenv(envLogFile, path)
	t.Setenv(envLogLevel, "warning")
	loadLoggerEnv()

	Logger().Debug().Log("quiet")
	Logger().Warning().Log("loud")
	out := readLog(t, path)

	if strings.Contains(out, "quiet") {
		t.Errorf("debug event written at warning level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warning event missing: %q", out)
	}
}

func TestLoadAssertEnv(t *testing.T) {
	cleanState(t)
	t.Setenv(envAssertPanic, "true")
	loadAssertEnv()
	if !enableAssert {
		t.Error("assertions not enabled")
	}
	t.Setenv(envAssertPanic, "false")
	loadAssertEnv()
	if enableAssert {
		t.Error("assertions still enabled")
	}
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]logiface.Level{
		"trace":   logiface.LevelTrace,
		" INFO ":  logiface.LevelInformational,
		"warn":    logiface.LevelWarning,
		"err":     logiface.LevelError,
		"off":     logiface.LevelDisabled,
		"unknown": logiface.LevelDebug,
		"":        logiface.LevelDebug,
	} {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestToString(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want string
	}{
		{func() string { return "fn" }, "fn"},
		{"plain", "plain"},
		{label("x"), "label:x"},
		{42, "42"},
	} {
		if got := toString(tc.in); got != tc.want {
			t.Errorf("toString(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

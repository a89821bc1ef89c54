package termtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goconsole "github.com/joeycumines/go-console"
)

func TestResolveConsoleOptions(t *testing.T) {
	cfg, err := resolveConsoleOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(24), cfg.rows)
	assert.Equal(t, uint16(80), cfg.cols)
	assert.Equal(t, 30*time.Second, cfg.defaultTimeout)

	cfg, err = resolveConsoleOptions([]ConsoleOption{
		WithSize(10, 40),
		WithDefaultTimeout(time.Second),
		WithEnv("A=1"),
		WithEnv("B=2", "C=3"),
		WithDir("/tmp"),
		WithCommand("first", "x"),
		WithCommand("second", "y", "z"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint16(10), cfg.rows)
	assert.Equal(t, uint16(40), cfg.cols)
	assert.Equal(t, time.Second, cfg.defaultTimeout)
	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, cfg.env)
	assert.Equal(t, "/tmp", cfg.dir)
	assert.Equal(t, "second", cfg.cmdName)
	assert.Equal(t, []string{"y", "z"}, cfg.args)
}

func TestResolveHarnessOptions(t *testing.T) {
	cfg, err := resolveHarnessOptions([]HarnessOption{
		WithSize(5, 6),
		WithOutputOptions(goconsole.WithVerbosity(goconsole.VerbosityDebug)),
		WithOutputOptions(goconsole.WithFormatting(false)),
	})
	require.NoError(t, err)
	assert.Equal(t, uint16(5), cfg.rows)
	assert.Equal(t, uint16(6), cfg.cols)
	assert.Len(t, cfg.outputOptions, 2)

	_, err = resolveHarnessOptions([]HarnessOption{WithSize(0, 80)})
	assert.ErrorContains(t, err, "invalid size")
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with fresh flag values and an isolated
// config dir.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TIMERIDLE_CONFIG_DIR", t.TempDir())
	configPath, logLevel, verbose = "", "", false
	checkExitCode, initForce = false, false
	waitTimeout, waitPauseAfter = 0, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "timeridle dev")
	assert.Contains(t, out, "1.5s")
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	out, err := run(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	_, err = run(t, "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestCheckCmd(t *testing.T) {
	busy := writeFile(t, "busy.yaml", "timers:\n  - label: soon\n    in: 800ms\n")
	idle := writeFile(t, "idle.yaml", "timers:\n  - label: later\n    in: 10s\n  - label: poll\n    in: 50ms\n    interval: 50ms\n    repeat: true\n")

	t.Run("busy", func(t *testing.T) {
		out, err := run(t, "check", busy, "-v", "--log-level", "error")
		require.NoError(t, err)
		assert.Contains(t, out, "busy\n")
		assert.Contains(t, out, "next one-shot timer:")
	})

	t.Run("busy with exit code", func(t *testing.T) {
		_, err := run(t, "check", busy, "--exit-code", "-v", "--log-level", "error")
		assert.ErrorIs(t, err, errBusy)
	})

	t.Run("idle", func(t *testing.T) {
		out, err := run(t, "check", idle, "-v", "--log-level", "error")
		require.NoError(t, err)
		assert.Contains(t, out, "idle\n")
	})

	t.Run("narrow busy window from config", func(t *testing.T) {
		cfg := writeFile(t, "config.json", `{"busy_window":"100ms"}`)
		out, err := run(t, "check", busy, "--config", cfg, "-v", "--log-level", "error")
		require.NoError(t, err)
		assert.Contains(t, out, "idle\n")
	})

	t.Run("missing scenario", func(t *testing.T) {
		_, err := run(t, "check", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "load scenario")
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := run(t, "check", idle, "--log-level", "loud")
		assert.ErrorContains(t, err, "invalid log level")
	})
}

func TestWaitCmd(t *testing.T) {
	t.Run("waits for timers to fire", func(t *testing.T) {
		sc := writeFile(t, "s.yaml", "timers:\n  - in: 60ms\n  - in: 20ms\n")
		out, err := run(t, "wait", sc, "--timeout", "5s", "-v", "--log-level", "error")
		require.NoError(t, err)
		assert.Contains(t, out, "idle after")
	})

	t.Run("pause forces idle", func(t *testing.T) {
		cfg := writeFile(t, "config.json", `{"busy_window":"1m"}`)
		sc := writeFile(t, "s.yaml", "timers:\n  - in: 30s\n")
		out, err := run(t, "wait", sc, "--config", cfg, "--timeout", "5s", "--pause-after", "50ms", "-v", "--log-level", "error")
		require.NoError(t, err)
		assert.Contains(t, out, "idle after")
	})

	t.Run("times out", func(t *testing.T) {
		sc := writeFile(t, "s.yaml", "timers:\n  - in: 1s\n")
		_, err := run(t, "wait", sc, "--timeout", "100ms", "-v", "--log-level", "error")
		assert.ErrorContains(t, err, "wait for idle")
	})
}

package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/anticipate/internal/cli"
)

type execution struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, args ...string) execution {
	t.Helper()

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- cli.Execute(context.Background(), args, &stdout, &stderr)
	}()

	select {
	case code := <-done:
		return execution{code, stdout.String(), stderr.String()}
	case <-time.After(10 * time.Second):
		t.Fatalf("anticipate %v did not exit", args)
		panic("unreachable")
	}
}

// after runs fn once d has passed.
func after(t *testing.T, d time.Duration, fn func()) {
	timer := time.AfterFunc(d, fn)
	t.Cleanup(func() { timer.Stop() })
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing path", nil},
		{"too many paths", []string{"a", "b"}},
		{"negative timeout", []string{"-t", "-5", "x"}},
		{"non-numeric timeout", []string{"--timeout", "soon", "x"}},
		{"timeout beyond a duration", []string{"-t", "18446744073710", "x"}},
		{"unknown flag", []string{"--frobnicate", "x"}},
		{"bad interval", []string{"--interval", "fast", "x"}},
		{"max below interval", []string{"--interval", "10ms", "--max-interval", "1ms", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.args...)

			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, cli.UsageLine)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestHelpExitsZero(t *testing.T) {
	res := execute(t, "--help")

	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "anticipate")
	assert.Contains(t, res.stdout, "--timeout")
	assert.Empty(t, res.stderr)
}

func TestCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	after(t, 100*time.Millisecond, func() {
		_ = os.WriteFile(path, []byte("hi"), 0o644)
	})

	res := execute(t, "-v", "--timeout", "5000", path)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t,
		"Target '"+path+"' does not exist. Awaiting creation.\n"+
			"Target '"+path+"' was created.\n",
		res.stdout)
	assert.Empty(t, res.stderr)
}

func TestTimeoutExceeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.txt")

	start := time.Now()
	res := execute(t, "--timeout", "200", path)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Wait timeout exceeded.\n", res.stderr)
	assert.Empty(t, res.stdout)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestTimeoutFromEnvironment(t *testing.T) {
	t.Setenv("ANTICIPATE_TIMEOUT", "50")
	path := filepath.Join(t.TempDir(), "never.txt")

	res := execute(t, path)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Wait timeout exceeded.\n", res.stderr)
}

func TestFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("ANTICIPATE_TIMEOUT", "soon")
	path := filepath.Join(t.TempDir(), "never.txt")

	res := execute(t, "-t", "50", path)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Wait timeout exceeded.\n", res.stderr)
}

func TestDirectoryEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), nil, 0o644))
	after(t, 100*time.Millisecond, func() {
		_ = os.Remove(filepath.Join(dir, "a"))
	})

	res := execute(t, "--verbose", "-t", "5000", dir)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Target '"+dir+"' exists. Awaiting modification.\n")
	assert.Contains(t, res.stdout, "Target '"+dir+"' was modified.")
	assert.Contains(t, res.stdout, "(change at '"+filepath.Join(dir, "a")+"')")
}

func TestPrintAfterModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("draft\n"), 0o644))

	after(t, 100*time.Millisecond, func() {
		// Replace atomically so the change is never observed half-written.
		tmp := filepath.Join(dir, ".report.tmp")
		future := time.Now().Add(time.Hour)
		_ = os.WriteFile(tmp, []byte("final\n"), 0o644)
		_ = os.Chtimes(tmp, future, future)
		_ = os.Rename(tmp, path)
	})

	res := execute(t, "--print", "-t", "5000", path)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "final\n", res.stdout)
}

func TestVanishedWhileAwaitingModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doomed.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	after(t, 100*time.Millisecond, func() {
		_ = os.Remove(path)
	})

	res := execute(t, "-t", "5000", path)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Target '"+path+"' vanished while awaiting modification.\n", res.stderr)
}

func TestProgressWithoutTerminalFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	after(t, 50*time.Millisecond, func() {
		_ = os.WriteFile(path, nil, 0o644)
	})

	res := execute(t, "--progress", "-t", "5000", path)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stderr)
}

func TestLongestTimeoutDoesNotFireEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	after(t, 100*time.Millisecond, func() {
		_ = os.WriteFile(path, nil, 0o644)
	})

	res := execute(t, "-t", "9223372036854", path)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stderr)
}

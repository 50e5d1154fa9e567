package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestDebugWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	enable(&buf)
	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		Debug.SetOutput(io.Discard)
	})

	Debug.Debug("captured file baseline", "path", "/tmp/x")

	out := buf.String()
	if !strings.Contains(out, "captured file baseline") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "path=/tmp/x") {
		t.Errorf("output missing key/value: %q", out)
	}
}

func TestCloseWithoutFile(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumipallolabs/anticipate/internal/timeout"
	"github.com/lumipallolabs/anticipate/internal/ui"
	"github.com/lumipallolabs/anticipate/internal/watcher"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"success", nil, 0, ""},
		{"timeout", fmt.Errorf("wait: %w", timeout.ErrTimeoutExceeded), 1, "Wait timeout exceeded.\n"},
		{"aborted", ErrAborted, 1, "Wait aborted.\n"},
		{
			"vanished",
			&watcher.PathVanishedError{Path: "/tmp/x", Err: fs.ErrNotExist},
			1,
			"Target '/tmp/x' vanished while awaiting modification.\n",
		},
		{"usage", usageErrorf("missing path"), 1, "Error: missing path\n" + UsageLine + "\n"},
		{"other", errors.New("boom"), 1, "Error: boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer

			assert.Equal(t, tt.code, report(tt.err, &stderr))
			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestPaintLeavesPipesPlain(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, "Wait timeout exceeded.", paint(&buf, ui.ErrorStyle, "Wait timeout exceeded."))
	assert.Equal(t, "was created.", paint(&buf, ui.DoneStyle, "was created."))
}

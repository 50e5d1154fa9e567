package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvVar names the environment variable that turns on debug logging.
//
// "1" or "stderr" logs to stderr; any other value is a log file path.
const EnvVar = "ANTICIPATE_DEBUG"

var (
	Debug *log.Logger

	mu      sync.Mutex
	logFile *os.File
)

func init() {
	Debug = log.NewWithOptions(io.Discard, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000000",
		Prefix:          "anticipate",
		Level:           log.DebugLevel,
	})

	// Only enable logging if ANTICIPATE_DEBUG environment variable is set
	dest := os.Getenv(EnvVar)
	if dest == "" {
		return
	}

	if dest == "1" || dest == "stderr" {
		EnableStderr()
		return
	}

	f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		EnableStderr()
		Debug.Warn("could not open debug log, using stderr", "path", dest, "err", err)
		return
	}

	mu.Lock()
	logFile = f
	mu.Unlock()
	enable(f)
}

// EnableStderr sends debug output to stderr.
func EnableStderr() {
	enable(os.Stderr)
}

func enable(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	Debug.SetOutput(w)
}

// Close flushes and closes the debug log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	Debug.SetOutput(io.Discard)
	return err
}

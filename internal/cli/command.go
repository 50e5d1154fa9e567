package cli

import (
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/anticipate/internal/waiting"
)

// UsageLine is printed to stderr on a usage error.
const UsageLine = "usage: anticipate [-v|--verbose] [-t|--timeout millisec] file"

// NewRootCmd creates the anticipate command.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anticipate [flags] file",
		Short: "Wait for a file or directory to be created or modified",
		Long: heredoc.Doc(`
			Block until the target path comes into existence or, if it already
			exists, is modified.

			A file is modified when its modification time changes. A directory is
			modified when an entry is added or removed, or when anything below it
			is modified.
		`),
		Example: heredoc.Doc(`
			# Wait for a build artifact to appear
			$ anticipate ./dist/app.js

			# Give up after five seconds
			$ anticipate --timeout 5000 ./results.json

			# Wait for a log to change, then print it
			$ anticipate -v --print ./server.log

			# Poll gently on a busy tree
			$ anticipate --interval 10ms --max-interval 1s ./src
		`),
		Args:          exactlyOnePath,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v, args[0])
			if err != nil {
				return err
			}

			r := &runner{cfg: cfg, stdout: stdout, stderr: stderr}
			return r.run(cmd.Context())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.Flags().IntP("timeout", "t", 0, "Milliseconds to wait before giving up (0 waits forever)")
	cmd.Flags().BoolP("verbose", "v", false, "Report whether the target exists and what changed")
	cmd.Flags().BoolP("print", "p", false, "Print the target file's contents once it is ready")
	cmd.Flags().DurationP("interval", "i", waiting.DefaultInterval, "Delay between polls")
	cmd.Flags().Duration("max-interval", 0, "Back off up to this delay between polls (default: no backoff)")
	cmd.Flags().Bool("progress", false, "Show a progress spinner on stderr while waiting")
	cmd.Flags().Bool("debug", false, "Write debug logs to stderr")

	return cmd
}

func exactlyOnePath(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		if args[0] == "" {
			return usageErrorf("empty path")
		}
		return nil
	case 0:
		return usageErrorf("missing path")
	default:
		return usageErrorf("expected one path, got %d: %v", len(args), args)
	}
}

// Package output writes a resolved target's contents to the user.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/mattn/go-isatty"
)

// ErrBinaryToTerminal is returned when printing non-text content to a
// terminal was refused.
var ErrBinaryToTerminal = errors.New("refusing to print binary content to a terminal")

// Printer copies file contents to an output stream.
type Printer struct {
	out      io.Writer
	terminal bool
	logger   *log.Logger
}

// NewPrinter returns a Printer writing to out.
//
// If out is a terminal, non-text content is refused.
func NewPrinter(out io.Writer, logger *log.Logger) *Printer {
	return &Printer{
		out:      out,
		terminal: IsTerminal(out),
		logger:   logger,
	}
}

// Print writes the contents of the file at path.
//
// Directories print nothing.
func (p *Printer) Print(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("print %s: %w", path, err)
	}
	if info.IsDir() {
		p.logger.Debug("not printing a directory", "path", path)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("print %s: %w", path, err)
	}

	mtype := mimetype.Detect(data)
	p.logger.Debug("printing target", "path", path, "mime", mtype.String(), "bytes", len(data))

	if p.terminal && !IsText(mtype) {
		return fmt.Errorf("%s is %s: %w", path, mtype.String(), ErrBinaryToTerminal)
	}

	if _, err := p.out.Write(data); err != nil {
		return fmt.Errorf("print %s: %w", path, err)
	}
	return nil
}

// IsText reports whether mtype is text/plain or a descendant of it.
func IsText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

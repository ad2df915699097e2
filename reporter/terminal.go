package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/qewer33/quetite/lexer"
)

// Terminal is the default Reporter: colored, human-readable diagnostics
// to a pair of writers, grounded on the teacher's main package color
// scheme (red for errors, yellow for ordinary/warning output, cyan for
// informational banners).
type Terminal struct {
	Out io.Writer
	Err io.Writer

	red   *color.Color
	amber *color.Color
	cyan  *color.Color
}

// NewTerminal builds a Terminal reporter writing to stdout/stderr.
func NewTerminal() *Terminal {
	return &Terminal{
		Out:   os.Stdout,
		Err:   os.Stderr,
		red:   color.New(color.FgRed),
		amber: color.New(color.FgYellow),
		cyan:  color.New(color.FgCyan),
	}
}

func (t *Terminal) ErrorAt(message, kind, source string, cursor lexer.Cursor, line string) {
	t.red.Fprintf(t.Err, "%s error at %s:%s: %s\n", kind, source, cursor, message)
	if line != "" {
		fmt.Fprintf(t.Err, "    %s\n", strings.TrimRight(line, "\n"))
		fmt.Fprintf(t.Err, "    %s^\n", strings.Repeat(" ", max(0, cursor.Column-1)))
	}
}

func (t *Terminal) WarningAt(message, source string, cursor lexer.Cursor, line string) {
	t.amber.Fprintf(t.Err, "warning at %s:%s: %s\n", source, cursor, message)
}

func (t *Terminal) InfoAt(message, source string, cursor lexer.Cursor, line string) {
	t.cyan.Fprintf(t.Out, "%s:%s: %s\n", source, cursor, message)
}

func (t *Terminal) Error(message string) {
	t.red.Fprintf(t.Err, "error: %s\n", message)
}

func (t *Terminal) Warning(message string) {
	t.amber.Fprintf(t.Err, "warning: %s\n", message)
}

func (t *Terminal) Info(message string) {
	t.cyan.Fprintln(t.Out, message)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ Reporter = (*Terminal)(nil)

// Package reporter implements Quetite's diagnostic output surface: the
// four entry points (error_at/warning_at/info_at plus path-less
// variants) §6 describes as "pure I/O from the core's perspective".
package reporter

import "github.com/qewer33/quetite/lexer"

// Reporter is the CLI driver's diagnostic sink: cmd/quetite renders the
// lexer/parser/resolver errors and warnings and uncaught runtime errors
// through it. It never makes decisions about control flow, only renders.
type Reporter interface {
	ErrorAt(message, kind, source string, cursor lexer.Cursor, line string)
	WarningAt(message, source string, cursor lexer.Cursor, line string)
	InfoAt(message, source string, cursor lexer.Cursor, line string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

package objects

import (
	"fmt"

	"github.com/qewer33/quetite/lexer"
)

// SignalKind tags the evaluator's non-local control-flow carrier. Normal
// completion ("ok" in the spec) has no tag of its own: it is represented
// by a nil *Signal, which is the idiomatic Go zero value for "nothing to
// propagate".
type SignalKind int

const (
	SigError SignalKind = iota
	SigUserError
	SigReturn
	SigBreak
	SigContinue
)

// Runtime error kind tags, the closed set named in §4.4 and §7.
const (
	ErrKindType  = "Type"
	ErrKindValue = "Value"
	ErrKindArity = "Arity"
	ErrKindName  = "Name"
	ErrKindIO    = "IO"
	ErrKindNative = "Native"
	ErrKindUser  = "UserErr"
)

// Signal is the single internal result variant the evaluator threads
// through every statement and expression evaluation: ok (nil), error,
// user-error, return, break, continue. Loops catch break/continue,
// function calls catch return, try catches error and user-error; nothing
// else in the path may consume these tags.
type Signal struct {
	Kind   SignalKind
	Cursor lexer.Cursor

	// Value holds the operand for SigReturn.
	Value Value

	// ErrKind/Message/Note describe a SigError.
	ErrKind string
	Message string
	Note    string

	// Thrown holds the arbitrary value passed to `throw` for SigUserError.
	Thrown Value
}

func (s *Signal) Error() string {
	switch s.Kind {
	case SigError:
		return fmt.Sprintf("[%s] %s error: %s", s.Cursor, s.ErrKind, s.Message)
	case SigUserError:
		return fmt.Sprintf("[%s] uncaught throw: %s", s.Cursor, s.Thrown.Display())
	default:
		return fmt.Sprintf("[%s] unhandled control signal", s.Cursor)
	}
}

// NewError builds a SigError signal of the given kind, pinned at cursor.
func NewError(kind string, cursor lexer.Cursor, format string, a ...interface{}) *Signal {
	return &Signal{Kind: SigError, ErrKind: kind, Cursor: cursor, Message: fmt.Sprintf(format, a...)}
}

// CatchKindName returns the string a `catch` kind binder receives: the
// literal "UserErr" for a thrown value, or the runtime error's kind tag.
func (s *Signal) CatchKindName() string {
	if s.Kind == SigUserError {
		return ErrKindUser
	}
	return s.ErrKind
}

// CatchValue returns the value a `catch` value binder receives: the
// thrown value itself for a user-error, or the error message as a string
// for a runtime error.
func (s *Signal) CatchValue() Value {
	if s.Kind == SigUserError {
		return s.Thrown
	}
	return NewString(s.Message)
}

func NewThrow(value Value, cursor lexer.Cursor) *Signal {
	return &Signal{Kind: SigUserError, Thrown: value, Cursor: cursor}
}

func NewReturn(value Value) *Signal {
	return &Signal{Kind: SigReturn, Value: value}
}

func NewBreak(cursor lexer.Cursor) *Signal {
	return &Signal{Kind: SigBreak, Cursor: cursor}
}

func NewContinue(cursor lexer.Cursor) *Signal {
	return &Signal{Kind: SigContinue, Cursor: cursor}
}

// IsFailure reports whether the signal is an error or user-error (as
// opposed to return/break/continue, which are not failures).
func (s *Signal) IsFailure() bool {
	return s != nil && (s.Kind == SigError || s.Kind == SigUserError)
}

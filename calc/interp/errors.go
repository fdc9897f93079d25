package interp

import (
	"errors"
	"fmt"

	"github.com/hupe1980/numbridge/calc/token"
	"github.com/hupe1980/numbridge/core"
)

// ErrorKind classifies an evaluation failure.
type ErrorKind string

const (
	KindParse     ErrorKind = "parse"
	KindName      ErrorKind = "name"
	KindDimension ErrorKind = "dimension"
	KindType      ErrorKind = "type"
	KindRuntime   ErrorKind = "runtime"
	KindImport    ErrorKind = "import"
	KindAssertion ErrorKind = "assertion"
)

// Error is returned by Context.InterpretWithSettings. Error() is the bare
// message; Kind, Pos and Source are kept for callers that want them.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
	Source  core.SourceKind
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

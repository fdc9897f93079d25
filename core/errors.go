package core

import (
	"errors"
	"fmt"
)

// ErrSessionBusy is matched by every *AccessViolationError.
var ErrSessionBusy = errors.New("session is busy")

// AccessViolationError reports an Eval attempted while another evaluation
// holds the session.
type AccessViolationError struct {
	SessionID string
}

func (e *AccessViolationError) Error() string {
	return fmt.Sprintf("session %s is busy: evaluations must not overlap", e.SessionID)
}

// Is makes errors.Is(err, ErrSessionBusy) hold.
func (e *AccessViolationError) Is(target error) bool { return target == ErrSessionBusy }

// EvaluationError carries an evaluator failure. Error returns the
// evaluator's message unchanged.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string { return e.Err.Error() }

func (e *EvaluationError) Unwrap() error { return e.Err }

// IsEvaluationError reports whether err is an evaluator failure.
func IsEvaluationError(err error) bool {
	var e *EvaluationError
	return errors.As(err, &e)
}

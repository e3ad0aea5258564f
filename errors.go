package bpu

import (
	"errors"
	"fmt"
)

// ErrorCode is a closed enumeration of the BPU error taxonomy.
type ErrorCode string

const (
	CodeNotInitialized  ErrorCode = "not initialized"
	CodeInvalidArgument ErrorCode = "invalid argument"
	CodeQueueFull       ErrorCode = "queue full"
	CodeEncode          ErrorCode = "encode capacity exceeded"
	CodeIO              ErrorCode = "io error"
	CodeBackpressure    ErrorCode = "backpressure"
)

// Error is a structured BPU error: an operation name, a closed error
// code, and optionally a wrapped cause. Two Errors compare equal for
// errors.Is purposes when their Code matches, regardless of Op or the
// wrapped cause — the code is the thing callers branch on.
type Error struct {
	Op    string
	Code  ErrorCode
	Inner error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("bpu: %s", e.Code)
	}
	return fmt.Sprintf("bpu: %s: %s", e.Op, e.Code)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is provides errors.Is support, comparing by Code so callers can write
// errors.Is(err, bpu.ErrQueueFull) without caring about Op or wrapping.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// NewError creates a structured error with no wrapped cause.
func NewError(op string, code ErrorCode) *Error {
	return &Error{Op: op, Code: code}
}

// WrapError wraps inner with BPU context under the given code; inner
// stays reachable through Unwrap. A nil inner yields nil.
func WrapError(op string, code ErrorCode, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Code: code, Inner: inner}
}

// IsCode reports whether err (or something it wraps) carries the given
// error code.
func IsCode(err error, code ErrorCode) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Sentinel errors for the common comparison case, one per taxonomy row
// — compared by Code via Is, so a wrapped instance with different Op
// still matches errors.Is(err, ErrQueueFull).
var (
	ErrNotInitialized  = NewError("", CodeNotInitialized)
	ErrInvalidArgument = NewError("", CodeInvalidArgument)
	ErrQueueFull       = NewError("", CodeQueueFull)
	ErrEncode          = NewError("", CodeEncode)
	ErrIO              = NewError("", CodeIO)
	ErrBackpressure    = NewError("", CodeBackpressure)
)

// Package errs classifies the failures produced by the analytics packages.
//
// Every failure is one of four classes. Not-found and validation errors are
// returned to the immediate caller. Malformed input is absorbed at the load
// boundary and reported alongside an empty working set. Undefined arithmetic
// comes back as a sentinel value plus ErrUndefinedGrowth.
package errs

import (
	"errors"
	"fmt"
)

// Class represents the classification of an error for handling purposes.
type Class int

const (
	// NotFound is an unknown product id or name.
	NotFound Class = iota
	// Invalid is input rejected at the boundary, e.g. negative stock.
	Invalid
	// Malformed is an unreadable or unparsable source file.
	Malformed
	// Undefined is an arithmetic result with no finite value.
	Undefined
)

// String returns the string representation of Class.
func (c Class) String() string {
	switch c {
	case NotFound:
		return "not_found"
	case Invalid:
		return "invalid"
	case Malformed:
		return "malformed"
	case Undefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Standard error variables, matched with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrMalformedInput  = errors.New("malformed input")
	ErrUndefinedGrowth = errors.New("growth rate undefined for zero base period")
)

// Error wraps a failure with its class and the operation that produced it.
type Error struct {
	Class Class
	Op    string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Field, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's class so callers can test
// errors.Is(err, ErrNotFound) without caring about the wrapped cause.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Class == NotFound
	case ErrValidation:
		return e.Class == Invalid
	case ErrMalformedInput:
		return e.Class == Malformed
	case ErrUndefinedGrowth:
		return e.Class == Undefined
	}
	return false
}

// NewNotFound reports that key is unknown to op.
func NewNotFound(op, key string) error {
	return &Error{Class: NotFound, Op: op, Field: key, Err: ErrNotFound}
}

// NewInvalid reports that field was rejected by op.
func NewInvalid(op, field, msg string) error {
	return &Error{Class: Invalid, Op: op, Field: field, Err: errors.New(msg)}
}

// NewMalformed wraps a read or parse failure.
func NewMalformed(op string, err error) error {
	return &Error{Class: Malformed, Op: op, Err: err}
}

// NewUndefined reports an arithmetic result op cannot define.
func NewUndefined(op string) error {
	return &Error{Class: Undefined, Op: op, Err: ErrUndefinedGrowth}
}

// ClassOf returns the class of err and whether err carries one.
func ClassOf(err error) (Class, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return 0, false
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsMalformed reports whether err is a malformed input failure.
func IsMalformed(err error) bool { return errors.Is(err, ErrMalformedInput) }

package dual

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned by Binary when an operand is not a Dual.
	ErrTypeMismatch = errors.New("unsupported operand type(s)")

	// ErrDivisionByZero is returned when a divisor (or the base of a power) has a zero real part.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is returned when a function is applied outside of its domain.
	ErrDomain = errors.New("math domain error")

	// ErrUnknownKernel is returned by UseKernel for a kernel that is not compiled in.
	ErrUnknownKernel = errors.New("unknown kernel")
)

// Error describes a failed Dual operation.
type Error struct {
	// Op is the operator symbol or function name, e.g. "/" or "log".
	Op string

	// Operand is the value whose real part was rejected.
	Operand Dual

	// Left and Right name the operand types of a type mismatch.
	Left, Right string

	Err error
}

func (e *Error) Error() string {
	if e.Err == ErrTypeMismatch {
		return fmt.Sprintf("dual: %v for %s: '%s' and '%s'", e.Err, e.Op, e.Left, e.Right)
	}
	return fmt.Sprintf("dual: %s of %v: %v", e.Op, e.Operand, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func domainError(op string, d Dual) error {
	return &Error{Op: op, Operand: d, Err: ErrDomain}
}

func zeroError(op string, d Dual) error {
	return &Error{Op: op, Operand: d, Err: ErrDivisionByZero}
}

package dual

import (
	"fmt"
	"math"
	"strconv"
)

// Dual is an immutable pair of a real value and its derivative (the dual part).
type Dual struct {
	real float64
	dual float64
}

// New makes a dual number from its two components.
func New(real, dual float64) Dual {
	return Dual{real: real, dual: dual}
}

// Variable seeds the independent variable: the derivative of x with respect to itself is 1.
func Variable(x float64) Dual {
	return Dual{real: x, dual: 1}
}

// Constant makes a value that does not depend on the variable.
func Constant(c float64) Dual {
	return Dual{real: c}
}

// Real returns the value part.
func (a Dual) Real() float64 {
	return a.real
}

// Dual returns the derivative part.
func (a Dual) Dual() float64 {
	return a.dual
}

// Add returns a + b.
func (a Dual) Add(b Dual) Dual {
	return Dual{a.real + b.real, a.dual + b.dual}
}

// Sub returns a - b.
func (a Dual) Sub(b Dual) Dual {
	return Dual{a.real - b.real, a.dual - b.dual}
}

// Neg returns -a.
func (a Dual) Neg() Dual {
	return Dual{-a.real, -a.dual}
}

// Mul returns a * b using the product rule.
func (a Dual) Mul(b Dual) Dual {
	k := current()
	return Dual{a.real * b.real, k.productTangent(a.real, a.dual, b.real, b.dual)}
}

// Div returns a / b using the quotient rule.
// It fails with ErrDivisionByZero when the real part of b is zero, whatever its dual part.
func (a Dual) Div(b Dual) (Dual, error) {
	if b.real == 0 {
		return Dual{}, zeroError("/", b)
	}
	k := current()
	return Dual{a.real / b.real, k.quotientTangent(a.real, a.dual, b.real, b.dual)}, nil
}

// Pow returns a raised to b, differentiated as exp(b*log(a)).
// The base must have a positive real part: zero fails with ErrDivisionByZero
// and negative values with ErrDomain.
func (a Dual) Pow(b Dual) (Dual, error) {
	switch {
	case a.real == 0:
		return Dual{}, zeroError("**", a)
	case a.real < 0:
		return Dual{}, domainError("**", a)
	}
	k := current()
	p := math.Pow(a.real, b.real)
	return Dual{p, k.powerTangent(p, math.Log(a.real), a.real, a.dual, b.real, b.dual)}, nil
}

// Equal reports whether both components are exactly equal.
func (a Dual) Equal(b Dual) bool {
	return a.real == b.real && a.dual == b.dual
}

// NotEqual is the negation of Equal.
func (a Dual) NotEqual(b Dual) bool {
	return !a.Equal(b)
}

func (a Dual) String() string {
	return "Dual(real=" + strconv.FormatFloat(a.real, 'g', -1, 64) +
		", dual=" + strconv.FormatFloat(a.dual, 'g', -1, 64) + ")"
}

// Op identifies a binary operator for Binary.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
)

func (o Op) String() string {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return string(rune(o))
	case OpPow:
		return "**"
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Binary applies op to two operands whose static type is not known, for
// example values coming out of an interpreter. Both operands must be a Dual
// or a non-nil *Dual; anything else fails with ErrTypeMismatch before any
// arithmetic is done. An unknown op is reported the same way.
func Binary(op Op, a, b interface{}) (Dual, error) {
	x, okA := operand(a)
	y, okB := operand(b)
	if !okA || !okB {
		return Dual{}, &Error{Op: op.String(), Left: typeName(a), Right: typeName(b), Err: ErrTypeMismatch}
	}
	switch op {
	case OpAdd:
		return x.Add(y), nil
	case OpSub:
		return x.Sub(y), nil
	case OpMul:
		return x.Mul(y), nil
	case OpDiv:
		return x.Div(y)
	case OpPow:
		return x.Pow(y)
	}
	return Dual{}, &Error{Op: op.String(), Left: typeName(a), Right: typeName(b), Err: ErrTypeMismatch}
}

func operand(v interface{}) (Dual, bool) {
	switch d := v.(type) {
	case Dual:
		return d, true
	case *Dual:
		if d != nil {
			return *d, true
		}
	}
	return Dual{}, false
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}

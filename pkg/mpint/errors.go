package mpint

import "errors"

// Arithmetic violations. These are raised with panic: a wrapped-around or
// poisoned value would silently corrupt every computation downstream.
var (
	ErrUnderflow      = errors.New("mpint: subtraction underflow")
	ErrDivisionByZero = errors.New("mpint: division by zero")
	ErrZeroModulus    = errors.New("mpint: zero modulus")
)

// Caller errors, returned.
var (
	ErrInvalidHex    = errors.New("mpint: invalid hexadecimal string")
	ErrEmptyRange    = errors.New("mpint: empty sampling range")
	ErrNotInvertible = errors.New("mpint: operands are not coprime")
	ErrShortBuffer   = errors.New("mpint: buffer too small for value")
)

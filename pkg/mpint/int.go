package mpint

import (
	"fmt"
	"strings"
)

// Int is a non-negative multi-precision integer. The zero value is 0.
//
// Operations set the receiver to the result and return it, so calls
// chain the same way they do for math/big:
//
//	n := new(mpint.Int).Mul(p, q)
//
// Operands may alias the receiver.
type Int struct {
	abs nat
}

// NewInt returns a new Int set to x.
func NewInt(x uint64) *Int {
	return new(Int).SetUint64(x)
}

// SetUint64 sets z to x and returns z.
func (z *Int) SetUint64(x uint64) *Int {
	z.abs = z.abs.setUint64(x)
	return z
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	if z != x {
		z.abs = z.abs.set(x.abs)
	}
	return z
}

// Clone returns a new Int holding the value of x.
func (x *Int) Clone() *Int {
	return new(Int).Set(x)
}

// SetWords sets z to the value of the little-endian digit sequence ws.
// Leading zero digits are trimmed.
func (z *Int) SetWords(ws []Word) *Int {
	z.abs = z.abs.set(nat(ws)).norm()
	return z
}

// Words returns a copy of the digits of x, least significant first.
// Zero has no digits.
func (x *Int) Words() []Word {
	return append([]Word(nil), x.abs...)
}

// Len returns the number of digits of x. Zero has length 0.
func (x *Int) Len() int {
	return len(x.abs)
}

// BitLen returns the length of x in bits. Zero has length 0.
func (x *Int) BitLen() int {
	return x.abs.bitLen()
}

// Bit returns the value of the i'th bit of x.
func (x *Int) Bit(i int) uint {
	if i < 0 {
		panic("mpint: negative bit index")
	}
	return x.abs.bit(uint(i))
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool {
	return len(x.abs) == 0
}

// IsOdd reports whether x is odd.
func (x *Int) IsOdd() bool {
	return len(x.abs) > 0 && x.abs[0]&1 == 1
}

// IsUint64 reports whether x fits in a uint64.
func (x *Int) IsUint64() bool {
	return x.abs.bitLen() <= 64
}

// Uint64 returns the low 64 bits of x.
func (x *Int) Uint64() uint64 {
	var v uint64
	for i := 0; i < len(x.abs) && i*_W < 64; i++ {
		v |= uint64(x.abs[i]) << (uint(i) * _W)
	}
	return v
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Int) Cmp(y *Int) int {
	return x.abs.cmp(y.abs)
}

// Equal reports whether x == y.
func (x *Int) Equal(y *Int) bool {
	return x.abs.cmp(y.abs) == 0
}

// Add sets z = x + y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	z.abs = z.abs.add(x.abs, y.abs)
	return z
}

// Sub sets z = x - y and returns z. It panics with ErrUnderflow if x < y.
func (z *Int) Sub(x, y *Int) *Int {
	z.abs = z.abs.sub(x.abs, y.abs)
	return z
}

// Mul sets z = x * y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	z.abs = z.abs.mul(x.abs, y.abs)
	return z
}

// Lsh sets z = x << n and returns z.
func (z *Int) Lsh(x *Int, n uint) *Int {
	z.abs = z.abs.lsh(x.abs, n)
	return z
}

// Rsh sets z = x >> n and returns z. Shifting past the bit length yields 0.
func (z *Int) Rsh(x *Int, n uint) *Int {
	z.abs = z.abs.rsh(x.abs, n)
	return z
}

// DivMod sets z to the quotient x/y and m to the remainder x%y and returns
// the pair (z, m). It panics with ErrDivisionByZero if y == 0.
func (z *Int) DivMod(x, y, m *Int) (*Int, *Int) {
	z.abs, m.abs = z.abs.div(m.abs, x.abs, y.abs)
	return z, m
}

// Div sets z to the quotient x/y and returns z.
func (z *Int) Div(x, y *Int) *Int {
	var r Int
	z.abs, _ = z.abs.div(r.abs, x.abs, y.abs)
	return z
}

// Mod sets z to the remainder x%y and returns z.
func (z *Int) Mod(x, y *Int) *Int {
	var q Int
	_, z.abs = q.abs.div(z.abs, x.abs, y.abs)
	return z
}

// String returns x in hexadecimal, most significant digit first.
func (x *Int) String() string {
	return x.Text()
}

// Text returns the upper-case hexadecimal rendering of x without leading
// zeros. Zero renders as "0".
func (x *Int) Text() string {
	if len(x.abs) == 0 {
		return "0"
	}
	var b strings.Builder
	b.Grow(len(x.abs) * _S * 2)
	fmt.Fprintf(&b, "%X", uint64(x.abs[len(x.abs)-1]))
	for i := len(x.abs) - 2; i >= 0; i-- {
		fmt.Fprintf(&b, "%0*X", _S*2, uint64(x.abs[i]))
	}
	return b.String()
}

// Format implements fmt.Formatter for the %s, %v, %x and %X verbs.
func (x *Int) Format(s fmt.State, ch rune) {
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}
	switch ch {
	case 'x':
		fmt.Fprint(s, strings.ToLower(x.Text()))
	default:
		fmt.Fprint(s, x.Text())
	}
}

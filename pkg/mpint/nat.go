package mpint

import "math/bits"

// nat is the digit buffer behind Int:
//
//	x = x[n-1]*_B^(n-1) + ... + x[1]*_B + x[0]
//
// with the least significant digit first. A nat is normalized when it
// has no leading zero digits; zero is the empty slice. Every operation
// below returns a normalized result.
type nat []Word

var (
	natOne = nat{1}
	natTwo = nat{2}
)

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[0:i]
}

// make returns a slice of length n, reusing z when it is large enough.
func (z nat) make(n int) nat {
	if n <= cap(z) {
		return z[:n]
	}
	if n == 1 {
		return make(nat, 1)
	}
	const e = 4 // extra capacity
	return make(nat, n, n+e)
}

func (z nat) setWord(x Word) nat {
	if x == 0 {
		return z[:0]
	}
	z = z.make(1)
	z[0] = x
	return z
}

func (z nat) setUint64(x uint64) nat {
	if w := Word(x); uint64(w) == x {
		return z.setWord(w)
	}
	// 32-bit digits
	z = z.make(2)
	z[1] = Word(x >> 32)
	z[0] = Word(x)
	return z
}

func (z nat) set(x nat) nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

// alias reports whether x and y share the same backing array.
func alias(x, y nat) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

func (z nat) add(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		return z.add(y, x)
	case m == 0:
		return z[:0]
	case n == 0:
		return z.set(x)
	}

	z = z.make(m + 1)
	c := addVV(z[:n], x[:n], y[:n])
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c

	return z.norm()
}

func (z nat) sub(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		panic(ErrUnderflow)
	case m == 0:
		return z[:0]
	case n == 0:
		return z.set(x)
	}

	z = z.make(m)
	c := subVV(z[:n], x[:n], y[:n])
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if c != 0 {
		panic(ErrUnderflow)
	}

	return z.norm()
}

func (x nat) cmp(y nat) (r int) {
	m := len(x)
	n := len(y)
	if m != n || m == 0 {
		switch {
		case m < n:
			r = -1
		case m > n:
			r = 1
		}
		return
	}

	i := m - 1
	for i > 0 && x[i] == y[i] {
		i--
	}

	switch {
	case x[i] < y[i]:
		r = -1
	case x[i] > y[i]:
		r = 1
	}
	return
}

// mul computes x*y by schoolbook multiplication: one row of
// digit-by-digit products per digit of y, accumulated with carries.
func (z nat) mul(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		return z.mul(y, x)
	case m == 0 || n == 0:
		return z[:0]
	case n == 1:
		return z.mulAddWW(x, y[0], 0)
	}

	if alias(z, x) || alias(z, y) {
		z = nil
	}
	z = z.make(m + n)
	clear(z)
	for i, d := range y {
		if d != 0 {
			z[m+i] = addMulVVW(z[i:i+m], x, d)
		}
	}
	return z.norm()
}

// mulAddWW computes x*y + r.
func (z nat) mulAddWW(x nat, y, r Word) nat {
	m := len(x)
	if m == 0 || y == 0 {
		return z.setWord(r)
	}
	if alias(z, x) {
		z = nil
	}
	z = z.make(m + 1)
	z[m] = mulAddVWW(z[0:m], x, y, r)
	return z.norm()
}

func (x nat) bitLen() int {
	if i := len(x) - 1; i >= 0 {
		return i*_W + bits.Len(uint(x[i]))
	}
	return 0
}

func (x nat) bit(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j] >> (i % _W) & 1)
}

// isPow2 reports whether x is a power of two. Zero is not.
func (x nat) isPow2() bool {
	if len(x) == 0 {
		return false
	}
	for _, d := range x[:len(x)-1] {
		if d != 0 {
			return false
		}
	}
	top := x[len(x)-1]
	return top&(top-1) == 0
}

// lsh sets z = x << s.
func (z nat) lsh(x nat, s uint) nat {
	m := len(x)
	if m == 0 {
		return z[:0]
	}

	n := m + int(s/_W)
	if alias(z, x) {
		z = nil
	}
	z = z.make(n + 1)
	if s %= _W; s == 0 {
		copy(z[n-m:n], x)
		z[n] = 0
	} else {
		z[n] = shlVU(z[n-m:n], x, s)
	}
	clear(z[0 : n-m])

	return z.norm()
}

// rsh sets z = x >> s.
func (z nat) rsh(x nat, s uint) nat {
	m := len(x)
	n := m - int(s/_W)
	if n <= 0 {
		return z[:0]
	}

	if alias(z, x) {
		z = nil
	}
	z = z.make(n)
	if s %= _W; s == 0 {
		copy(z, x[m-n:])
	} else {
		shrVU(z, x[m-n:], s)
	}

	return z.norm()
}

// trunc sets z = x mod _B^n, keeping only the low n digits.
func (z nat) trunc(x nat, n int) nat {
	if n > len(x) {
		n = len(x)
	}
	return z.set(x[:n]).norm()
}

// setBit0 sets z = x | 1.
func (z nat) setBit0(x nat) nat {
	if len(x) == 0 {
		return z.setWord(1)
	}
	z = z.set(x)
	z[0] |= 1
	return z
}

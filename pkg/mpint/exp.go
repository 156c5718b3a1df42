package mpint

// Exp sets z = x**e mod n, where n is the modulus of r, and returns z.
//
// It walks the exponent from the least significant bit up, squaring the
// running power of x at every step and folding it into the result when
// the bit is set, with every product reduced through r. The number of
// iterations depends only on the bit length of e.
//
// x must be below n; callers are expected to check this (an unreduced
// base still yields x**e mod n, but a message block at or above n has
// already lost information).
func (r *Reducer) Exp(z, x, e *Int) *Int {
	z, _ = r.exp(z, x, e)
	return z
}

// exp is Exp that also returns the number of squarings performed, which
// is always e.BitLen().
func (r *Reducer) exp(z, x, e *Int) (*Int, int) {
	if len(r.n) == 1 && r.n[0] == 1 {
		z.abs = z.abs[:0]
		return z, 0
	}

	result := nat(nil).setWord(1)
	base := r.reduce(nil, x.abs)

	var t nat
	n := e.abs.bitLen()
	squarings := 0
	for i := 0; i < n; i++ {
		if e.abs.bit(uint(i)) == 1 {
			t = t.mul(result, base)
			result = r.reduce(result, t)
		}
		t = t.mul(base, base)
		base = r.reduce(base, t)
		squarings++
	}

	z.abs = z.abs.set(result)
	return z, squarings
}

// Exp sets z = x**e mod m and returns z, building a throwaway Reducer for
// m. Use a Reducer directly when exponentiating many values against the
// same modulus.
func (z *Int) Exp(x, e, m *Int) *Int {
	return NewReducer(m).Exp(z, x, e)
}

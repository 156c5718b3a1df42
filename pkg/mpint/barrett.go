package mpint

// Reducer computes x mod n for a fixed modulus n by Barrett reduction.
//
// It precomputes μ = ⌊_B^(2k) / n⌋ once, where _B is the digit base and k
// is the digit length of n, and then replaces every later division by n
// with two multiplications and at most two corrective subtractions.
//
// A Reducer owns a private copy of its modulus and never changes after
// construction, so it is safe for concurrent use. Build a new one for a
// new modulus.
type Reducer struct {
	n  nat // modulus
	mu nat // ⌊_B^(2k) / n⌋
	k  int // len(n)
}

// NewReducer returns a Reducer for the modulus n. It panics with
// ErrZeroModulus if n is zero.
func NewReducer(n *Int) *Reducer {
	if n.IsZero() {
		panic(ErrZeroModulus)
	}
	k := len(n.abs)

	b2k := make(nat, 2*k+1)
	b2k[2*k] = 1
	mu, _ := nat(nil).div(nil, b2k, n.abs)

	return &Reducer{
		n:  nat(nil).set(n.abs),
		mu: mu,
		k:  k,
	}
}

// Modulus returns a copy of the modulus r reduces by.
func (r *Reducer) Modulus() *Int {
	return &Int{abs: nat(nil).set(r.n)}
}

// Reduce sets z = x mod n and returns z.
//
// Inputs below _B^(2k) (every product of two reduced operands) take the
// Barrett path; larger inputs fall back to long division.
func (r *Reducer) Reduce(z, x *Int) *Int {
	z.abs = r.reduce(z.abs, x.abs)
	return z
}

func (r *Reducer) reduce(z, x nat) nat {
	k := r.k
	if len(x) > 2*k {
		_, rem := nat(nil).div(z, x, r.n)
		return rem
	}
	if x.cmp(r.n) < 0 {
		return z.set(x)
	}

	// q̂ = ⌊⌊x / _B^(k-1)⌋ · μ / _B^(k+1)⌋
	var q nat
	if len(x) > k-1 {
		q = nat(nil).set(x[k-1:])
	}
	q = q.mul(q, r.mu)
	if len(q) > k+1 {
		q = q[k+1:].norm()
	} else {
		q = q[:0]
	}

	// rem = (x mod _B^(k+1)) - (q̂·n mod _B^(k+1)), taken mod _B^(k+1)
	r1 := nat(nil).trunc(x, k+1)
	r2 := q.mul(q, r.n)
	r2 = r2.trunc(r2, k+1)
	var rem nat
	if r1.cmp(r2) < 0 {
		r1 = r1.add(r1, bPow(k+1))
	}
	if alias(z, x) {
		z = nil
	}
	rem = z.sub(r1, r2)

	// at most two corrections for in-range inputs
	for rem.cmp(r.n) >= 0 {
		rem = rem.sub(rem, r.n)
	}
	return rem
}

// bPow returns _B^k.
func bPow(k int) nat {
	z := make(nat, k+1)
	z[k] = 1
	return z
}

// MulMod sets z = x*y mod n and returns z. x and y should already be
// reduced.
func (r *Reducer) MulMod(z, x, y *Int) *Int {
	var t nat
	t = t.mul(x.abs, y.abs)
	z.abs = r.reduce(z.abs, t)
	return z
}

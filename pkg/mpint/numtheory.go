package mpint

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD(a, b *Int) *Int {
	x := nat(nil).set(a.abs)
	y := nat(nil).set(b.abs)
	var q nat
	for len(y) != 0 {
		var r nat
		q, r = q.div(r, x, y)
		x, y = y, r
	}
	return &Int{abs: x}
}

// Jacobi returns the Jacobi symbol (a/n), which is -1, 0 or +1.
// n must be odd; Jacobi panics otherwise.
//
// The symbol is evaluated by repeatedly pulling out factors of two, using
// (2/n) = -1 exactly when n ≡ 3 or 5 (mod 8), and swapping the arguments
// by quadratic reciprocity, which flips the sign when a ≡ n ≡ 3 (mod 4).
func Jacobi(a, n *Int) int {
	if !n.IsOdd() {
		panic("mpint: Jacobi modulus must be odd")
	}

	x := nat(nil).set(a.abs)
	y := nat(nil).set(n.abs)
	if x.cmp(y) >= 0 {
		var q nat
		_, x = q.div(nil, x, y)
	}

	j := 1
	for {
		if len(y) == 1 && y[0] == 1 {
			return j
		}
		if len(x) == 0 {
			return 0
		}
		if len(x) == 1 && x[0] == 1 {
			return j
		}

		// (2/y)
		for x[0]&1 == 0 {
			x = x.rsh(x, 1)
			if m := y[0] & 7; m == 3 || m == 5 {
				j = -j
			}
		}
		if len(x) == 1 && x[0] == 1 {
			return j
		}

		// reciprocity
		if x[0]&3 == 3 && y[0]&3 == 3 {
			j = -j
		}
		var q, r nat
		_, r = q.div(r, y, x)
		x, y = r, x
	}
}

// Inverse returns d such that u*d ≡ 1 (mod v).
//
// It runs the extended Euclidean algorithm keeping only the coefficient
// of u, in the unsigned form that tracks the sign of that coefficient by
// the parity of the iteration count instead of carrying negative values.
// ErrNotInvertible is returned when gcd(u, v) != 1, which the loop gives
// for free as its final remainder.
func Inverse(u, v *Int) (*Int, error) {
	if v.IsZero() {
		panic(ErrDivisionByZero)
	}

	u1 := nat(nil).setWord(1)
	u3 := nat(nil).set(u.abs)
	var v1 nat
	v3 := nat(nil).set(v.abs)
	odd := false

	var q, t3, w nat
	for len(v3) != 0 {
		q, t3 = q.div(t3, u3, v3)
		w = w.mul(q, v1)
		t1 := nat(nil).add(u1, w)

		u1, v1 = v1, t1
		u3, v3, t3 = v3, t3, u3

		odd = !odd
	}

	if len(u3) != 1 || u3[0] != 1 {
		return nil, ErrNotInvertible
	}

	d := &Int{abs: u1}
	if odd {
		d.abs = nat(nil).sub(v.abs, u1)
	}
	if d.abs.cmp(v.abs) >= 0 {
		d.abs = d.abs.sub(d.abs, v.abs)
	}
	return d, nil
}

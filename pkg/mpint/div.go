package mpint

import "math/bits"

// divW returns q = x/y and r = x%y for a single-digit divisor.
func (z nat) divW(x nat, y Word) (q nat, r Word) {
	m := len(x)
	switch {
	case y == 0:
		panic(ErrDivisionByZero)
	case y == 1:
		q = z.set(x)
		return
	case m == 0:
		q = z[:0]
		return
	}
	if alias(z, x) {
		z = nil
	}
	z = z.make(m)
	r = divWVW(z, 0, x, y)
	q = z.norm()
	return
}

// div returns q = u/v and r = u%v such that u = q*v + r and 0 <= r < v.
// It panics with ErrDivisionByZero if v is zero.
//
// The multi-digit case is long division: each quotient digit is estimated
// from the two leading digits of the running remainder and the leading
// digit of the normalized divisor, corrected with the divisor's second
// digit, and fixed up by at most one add-back after the multiply-subtract
// step (Knuth, TAOCP vol. 2, 4.3.1, Algorithm D).
func (z nat) div(z2, u, v nat) (q, r nat) {
	if len(v) == 0 {
		panic(ErrDivisionByZero)
	}

	if u.cmp(v) < 0 {
		q = z[:0]
		r = z2.set(u)
		return
	}

	if len(v) == 1 {
		var r2 Word
		q, r2 = z.divW(u, v[0])
		r = z2.setWord(r2)
		return
	}

	q, r = z.divLarge(z2, u, v)
	return
}

func (z nat) divLarge(z2, uIn, vIn nat) (q, r nat) {
	n := len(vIn)
	m := len(uIn) - n

	// Normalize so the divisor's top digit has its high bit set; the
	// quotient estimate is then off by at most two before correction.
	shift := nlz(vIn[n-1])
	v := make(nat, n)
	shlVU(v, vIn, shift)

	u := make(nat, len(uIn)+1)
	u[len(uIn)] = shlVU(u[:len(uIn)], uIn, shift)

	if alias(z, uIn) || alias(z, vIn) {
		z = nil
	}
	q = z.make(m + 1)

	qhatv := make(nat, n+1)
	vn1, vn2 := v[n-1], v[n-2]

	for j := m; j >= 0; j-- {
		// estimate q̂ from the leading digits
		qhat := _M
		ujn := u[j+n]
		if ujn != vn1 {
			var rhat Word
			qq, rr := bits.Div(uint(ujn), uint(u[j+n-1]), uint(vn1))
			qhat, rhat = Word(qq), Word(rr)

			// correct with the second divisor digit: q̂·v[n-2] > r̂·_B + u[j+n-2]
			x1, x2 := mulWW(qhat, vn2)
			ujn2 := u[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prevRhat := rhat
				rhat += vn1
				if rhat < prevRhat {
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}

		// u[j:j+n+1] -= q̂·v
		qhatv[n] = mulAddVWW(qhatv[0:n], v, qhat, 0)
		c := subVV(u[j:j+len(qhatv)], u[j:], qhatv)
		if c != 0 {
			// q̂ was one too large; add one divisor back
			c := addVV(u[j:j+n], u[j:], v)
			u[j+n] += c
			qhat--
		}

		q[j] = qhat
	}

	q = q.norm()

	if alias(z2, uIn) || alias(z2, vIn) {
		z2 = nil
	}
	r = z2.make(n)
	shrVU(r, u[:n], shift)
	r = r.norm()

	return q, r
}

// greaterThan reports whether the two-digit value x1<<_W + x2 exceeds y1<<_W + y2.
func greaterThan(x1, x2, y1, y2 Word) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}

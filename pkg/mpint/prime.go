package mpint

import (
	"fmt"
	"io"
)

// DefaultTrials is the number of primality rounds used by callers that
// have no stronger requirement. Each round at least halves the chance of
// accepting a composite.
const DefaultTrials = 10

// RandomBelow returns a uniformly random value in [0, limit), drawing
// bytes from rnd and rejecting out-of-range samples.
func RandomBelow(rnd io.Reader, limit *Int) (*Int, error) {
	if limit.IsZero() {
		return nil, ErrEmptyRange
	}
	bitLen := limit.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	topMask := byte(0xff >> (uint(len(buf)*8 - bitLen)))

	z := new(Int)
	for {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, fmt.Errorf("reading random bytes: %w", err)
		}
		buf[0] &= topMask
		z.SetBytes(buf)
		if z.Cmp(limit) < 0 {
			return z, nil
		}
	}
}

// RandomRange returns a uniformly random value in [min, max).
func RandomRange(rnd io.Reader, min, max *Int) (*Int, error) {
	if min.Cmp(max) >= 0 {
		return nil, fmt.Errorf("%w: [%s, %s)", ErrEmptyRange, min, max)
	}
	span := new(Int).Sub(max, min)
	z, err := RandomBelow(rnd, span)
	if err != nil {
		return nil, err
	}
	return z.Add(z, min), nil
}

// ProbablyPrime reports whether p passes trials rounds of the
// Solovay–Strassen test, drawing witnesses from rnd.
//
// Each round picks a in [2, p) and requires gcd(a, p) = 1 and
// a^((p-1)/2) ≡ (a/p) (mod p), comparing the Euler criterion against the
// Jacobi symbol. The first failing round rejects p. A composite survives
// all rounds with probability at most 2^-trials. trials below 1 means
// DefaultTrials.
func ProbablyPrime(rnd io.Reader, p *Int, trials int) (bool, error) {
	if trials < 1 {
		trials = DefaultTrials
	}
	switch {
	case p.Cmp(NewInt(2)) < 0:
		return false, nil
	case p.Equal(NewInt(2)):
		return true, nil
	case !p.IsOdd():
		return false, nil
	}

	two := &Int{abs: natTwo}
	pMinus1 := new(Int).Sub(p, &Int{abs: natOne})
	half := new(Int).Rsh(pMinus1, 1)
	r := NewReducer(p)

	l := new(Int)
	for i := 0; i < trials; i++ {
		a, err := RandomRange(rnd, two, p)
		if err != nil {
			return false, err
		}
		if g := GCD(a, p); !g.Equal(&Int{abs: natOne}) {
			return false, nil
		}

		r.Exp(l, a, half)
		switch j := Jacobi(a, p); {
		case j == -1 && l.Equal(pMinus1):
		case j == 1 && l.Equal(&Int{abs: natOne}):
		default:
			return false, nil
		}
	}
	return true, nil
}

// isMersenneForm reports whether p+1 is a power of two, that is whether
// p is 2^k - 1.
func isMersenneForm(p *Int) bool {
	return nat(nil).add(p.abs, natOne).isPow2()
}

// PrimeCandidate draws one candidate from [min, max) the way GeneratePrime
// does: uniformly at random, forced odd, and never of the form 2^k - 1.
// Draws that the forced low bit pushes to max or beyond are redrawn.
func PrimeCandidate(rnd io.Reader, min, max *Int) (*Int, error) {
	for {
		p, err := RandomRange(rnd, min, max)
		if err != nil {
			return nil, err
		}
		p.abs = p.abs.setBit0(p.abs)
		if p.Cmp(max) >= 0 || isMersenneForm(p) {
			continue
		}
		return p, nil
	}
}

// GeneratePrime returns a probable prime in [min, max).
//
// It keeps drawing candidates until one passes ProbablyPrime. The loop
// has no iteration bound: a range without primes never returns. Callers
// that need a bound should drive PrimeCandidate and ProbablyPrime
// themselves.
func GeneratePrime(rnd io.Reader, min, max *Int, trials int) (*Int, error) {
	for {
		p, err := PrimeCandidate(rnd, min, max)
		if err != nil {
			return nil, err
		}
		ok, err := ProbablyPrime(rnd, p, trials)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
}

// BitRange returns [2^(bits-1), 2^bits), the values of exactly bits bits.
func BitRange(bits int) (min, max *Int) {
	if bits < 2 {
		panic("mpint: bit range needs at least 2 bits")
	}
	one := &Int{abs: natOne}
	min = new(Int).Lsh(one, uint(bits-1))
	max = new(Int).Lsh(one, uint(bits))
	return min, max
}

// GeneratePrimeBits returns a probable prime of exactly bits bits.
func GeneratePrimeBits(rnd io.Reader, bits, trials int) (*Int, error) {
	min, max := BitRange(bits)
	return GeneratePrime(rnd, min, max, trials)
}

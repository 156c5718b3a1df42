package mpint

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A single-word model of the same algorithms, written as plainly as
// possible. The multi-digit code must agree with it wherever both apply.

func modelPow(b, e, m uint64) uint64 {
	mulMod := func(x, y uint64) uint64 {
		hi, lo := bits.Mul64(x, y)
		return bits.Rem64(hi, lo, m)
	}
	result := uint64(1) % m
	b %= m
	for e != 0 {
		if e&1 == 1 {
			result = mulMod(result, b)
		}
		e >>= 1
		b = mulMod(b, b)
	}
	return result
}

func modelJacobi(a, b int64) int64 {
	switch {
	case a == 0 || a == 1:
		return a
	case a%2 == 0:
		if ((b*b-1)/8)%2 == 0 {
			return modelJacobi(a/2, b)
		}
		return -modelJacobi(a/2, b)
	case (((a-1)*(b-1))/4)%2 == 0:
		return modelJacobi(b%a, a)
	default:
		return -modelJacobi(b%a, a)
	}
}

func modelInverse(u, v uint64) uint64 {
	u1, u3, v1, v3 := uint64(1), u, uint64(0), v
	odd := false
	for v3 != 0 {
		q, t3 := u3/v3, u3%v3
		t1 := u1 + q*v1
		u1, v1 = v1, t1
		u3, v3 = v3, t3
		odd = !odd
	}
	if odd {
		return v - u1
	}
	return u1
}

func modelGCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func TestWordModelPow(t *testing.T) {
	rnd := newTestRand(70)
	for i := 0; i < 500; i++ {
		m := randBits(t, rnd, 63).Uint64() | 1
		b := randBits(t, rnd, 64).Uint64()
		e := randBits(t, rnd, 64).Uint64()
		got := new(Int).Exp(NewInt(b%m), NewInt(e), NewInt(m))
		require.Equal(t, modelPow(b, e, m), got.Uint64(), "%d^%d mod %d", b, e, m)
	}
}

func TestWordModelJacobi(t *testing.T) {
	// the model multiplies b*b, keep it small
	for n := int64(3); n < 3000; n += 2 {
		for a := int64(1); a < n; a += 7 {
			want := modelJacobi(a, n)
			if got := Jacobi(NewInt(uint64(a)), NewInt(uint64(n))); int64(got) != want {
				t.Fatalf("Jacobi(%d, %d) = %d, want %d", a, n, got, want)
			}
		}
	}
}

func TestWordModelInverse(t *testing.T) {
	rnd := newTestRand(71)
	checked := 0
	for i := 0; i < 1000; i++ {
		v := randBits(t, rnd, 31).Uint64() + 2
		u := randBits(t, rnd, 31).Uint64() % v
		if modelGCD(u, v) != 1 {
			_, err := Inverse(NewInt(u), NewInt(v))
			assert.ErrorIs(t, err, ErrNotInvertible)
			continue
		}
		d, err := Inverse(NewInt(u), NewInt(v))
		require.NoError(t, err)
		require.Equal(t, modelInverse(u, v)%v, d.Uint64(), "Inverse(%d, %d)", u, v)
		checked++
	}
	assert.Greater(t, checked, 400)
}

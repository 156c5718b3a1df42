package mpint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivModIdentity(t *testing.T) {
	rnd := newTestRand(10)
	for i := 0; i < 400; i++ {
		a := randBits(t, rnd, 1+(i*29)%1500)
		b := randBits(t, rnd, 1+(i*11)%700)
		if b.IsZero() {
			continue
		}

		q, r := new(Int).DivMod(a, b, new(Int))
		require.Equal(t, -1, r.Cmp(b), "remainder %s not below divisor %s", r, b)

		back := new(Int).Mul(q, b)
		back.Add(back, r)
		require.True(t, back.Equal(a), "%s != %s*%s + %s", a, q, b, r)
	}
}

func TestDivMatchesMathBig(t *testing.T) {
	rnd := newTestRand(11)
	for i := 0; i < 200; i++ {
		a := randBits(t, rnd, 64+i*9)
		b := randBits(t, rnd, 1+i*4)
		if b.IsZero() {
			continue
		}
		ba, bb := toBig(t, a), toBig(t, b)
		bq, br := new(big.Int).QuoRem(ba, bb, new(big.Int))

		assert.Equal(t, bq.Text(16), toBig(t, new(Int).Div(a, b)).Text(16))
		assert.Equal(t, br.Text(16), toBig(t, new(Int).Mod(a, b)).Text(16))
	}
}

// Divisors whose second digit drives the quotient estimate correction.
func TestDivEstimateCorrection(t *testing.T) {
	tests := []struct {
		u, v string
	}{
		{"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF"},
		{"80000000000000000000000000000000000000000000000", "800000000000000000000000000000001"},
		{"7FFFFFFFFFFFFFFF8000000000000000000000000000000000000000", "800000000000000000000000000000000FFFFFFFFFFFFFFFF"},
		{"100000000000000000000000000000000", "FFFFFFFFFFFFFFFF0000000000000001"},
	}
	for _, tt := range tests {
		u, v := MustParseHex(tt.u), MustParseHex(tt.v)
		q, r := new(Int).DivMod(u, v, new(Int))
		bq, br := new(big.Int).QuoRem(toBig(t, u), toBig(t, v), new(big.Int))
		assert.Equal(t, bq.Text(16), toBig(t, q).Text(16), "%s / %s", tt.u, tt.v)
		assert.Equal(t, br.Text(16), toBig(t, r).Text(16), "%s %% %s", tt.u, tt.v)
	}
}

func TestDivSmallDividend(t *testing.T) {
	a := NewInt(5)
	b := MustParseHex("10000000000000000000000")
	q, r := new(Int).DivMod(a, b, new(Int))
	assert.True(t, q.IsZero())
	assert.True(t, r.Equal(a))
}

func TestModInPlace(t *testing.T) {
	x := MustParseHex("123456789ABCDEF0123456789ABCDEF0123456789")
	m := MustParseHex("FEDCBA9876543210F")
	want := toBig(t, x)
	want.Mod(want, toBig(t, m))

	x.Mod(x, m)
	assert.Equal(t, want.Text(16), toBig(t, x).Text(16))
}

func TestDivisionByZeroPanics(t *testing.T) {
	assert.PanicsWithError(t, ErrDivisionByZero.Error(), func() {
		new(Int).Div(NewInt(7), new(Int))
	})
	assert.PanicsWithError(t, ErrDivisionByZero.Error(), func() {
		new(Int).Mod(MustParseHex("1000000000000000000000000"), new(Int))
	})
}

package mpint

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCarryChain(t *testing.T) {
	x := MustParseHex("31EB3579FFFFFFFFFFFFFFFFFFFFFFEC6FEBC427")
	y := MustParseHex("0000001390143BDA")
	want := MustParseHex("31EB357A00000000000000000000000000000001")

	x.Add(x, y)
	assert.True(t, x.Equal(want), "got %s, want %s", x, want)
}

func TestHexRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"0000", "0"},
		{"1", "1"},
		{"00ff", "FF"},
		{"0xDEADBEEF", "DEADBEEF"},
		{"FFFFFFFFFFFFFFFF", "FFFFFFFFFFFFFFFF"},
		{"10000000000000000", "10000000000000000"},
		{"abcdefABCDEF0123456789", "ABCDEFABCDEF0123456789"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			x, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, x.Text())
			assert.Equal(t, tt.want, fmt.Sprint(x))
		})
	}
}

func TestParseHexRejects(t *testing.T) {
	for _, in := range []string{"", "0x", "12G4", "-1", " 12"} {
		_, err := ParseHex(in)
		assert.ErrorIs(t, err, ErrInvalidHex, "input %q", in)
	}
}

func TestSetHexKeepsReceiverOnError(t *testing.T) {
	for _, in := range []string{"12G4", "FFFFFFFFFFFFFFFFFFFFZ", ""} {
		z := NewInt(5)
		_, err := z.SetHex(in)
		require.ErrorIs(t, err, ErrInvalidHex)
		assert.Equal(t, uint64(5), z.Uint64(), "input %q", in)
	}

	z := NewInt(5)
	_, err := z.SetHex("ABCDEF0123456789ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF0123456789ABCDEF", z.Text())
}

func TestZeroHasNoDigits(t *testing.T) {
	z := new(Int).Sub(NewInt(5), NewInt(5))
	assert.True(t, z.IsZero())
	assert.Equal(t, 0, z.Len())
	assert.Equal(t, 0, z.BitLen())
	assert.Equal(t, "0", z.Text())

	// trimming after a carry-free subtraction of the top digit
	x := new(Int).Lsh(NewInt(1), 3*WordBits)
	x.Add(x, NewInt(7))
	x.Sub(x, new(Int).Lsh(NewInt(1), 3*WordBits))
	assert.Equal(t, 1, x.Len())
	assert.Equal(t, uint64(7), x.Uint64())
}

func TestCmp(t *testing.T) {
	a := MustParseHex("100000000000000000000")
	b := MustParseHex("FFFFFFFFFFFFFFFFFFFF")
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a.Clone()))
	assert.Equal(t, -1, new(Int).Cmp(NewInt(1)))
}

func TestSubUnderflowPanics(t *testing.T) {
	assert.PanicsWithError(t, ErrUnderflow.Error(), func() {
		new(Int).Sub(NewInt(1), NewInt(2))
	})
	assert.PanicsWithError(t, ErrUnderflow.Error(), func() {
		new(Int).Sub(NewInt(1), MustParseHex("100000000000000000000"))
	})
}

func TestAddSubInverse(t *testing.T) {
	rnd := newTestRand(1)
	for i := 0; i < 200; i++ {
		a := randBits(t, rnd, 1+i*7%700)
		b := randBits(t, rnd, 1+i*13%700)
		if a.Cmp(b) < 0 {
			a, b = b, a
		}
		d := new(Int).Sub(a, b)
		back := new(Int).Add(d, b)
		require.True(t, back.Equal(a), "(%s - %s) + %s = %s", a, b, b, back)
	}
}

func TestArithmeticMatchesMathBig(t *testing.T) {
	rnd := newTestRand(2)
	for i := 0; i < 300; i++ {
		a := randBits(t, rnd, 1+(i*37)%1100)
		b := randBits(t, rnd, 1+(i*53)%1100)
		ba, bb := toBig(t, a), toBig(t, b)

		sum := new(Int).Add(a, b)
		assert.Equal(t, new(big.Int).Add(ba, bb).Text(16), toBig(t, sum).Text(16), "add")

		prod := new(Int).Mul(a, b)
		assert.Equal(t, new(big.Int).Mul(ba, bb).Text(16), toBig(t, prod).Text(16), "mul")

		s := uint(i % 300)
		assert.Equal(t, new(big.Int).Lsh(ba, s).Text(16), toBig(t, new(Int).Lsh(a, s)).Text(16), "lsh %d", s)
		assert.Equal(t, new(big.Int).Rsh(ba, s).Text(16), toBig(t, new(Int).Rsh(a, s)).Text(16), "rsh %d", s)
	}
}

func TestShiftEdges(t *testing.T) {
	x := MustParseHex("123456789ABCDEF0123")
	assert.True(t, new(Int).Rsh(x, uint(x.BitLen())).IsZero())
	assert.True(t, new(Int).Rsh(x, 10000).IsZero())
	assert.True(t, new(Int).Rsh(x, uint(x.BitLen()-1)).Equal(NewInt(1)))

	l := new(Int).Lsh(x, 1000)
	assert.Equal(t, x.BitLen()+1000, l.BitLen())
	assert.True(t, new(Int).Rsh(l, 1000).Equal(x))

	assert.True(t, new(Int).Lsh(new(Int), 64).IsZero())
}

func TestMulInPlace(t *testing.T) {
	x := MustParseHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF")
	want := MustParseHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFE00000000000000000000000000000001")
	x.Mul(x, x)
	assert.True(t, x.Equal(want), "got %s", x)
	assert.LessOrEqual(t, x.Len(), 2*MustParseHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF").Len())
}

func TestBitAndUint64(t *testing.T) {
	x := MustParseHex("8000000000000001")
	assert.Equal(t, uint(1), x.Bit(0))
	assert.Equal(t, uint(0), x.Bit(1))
	assert.Equal(t, uint(1), x.Bit(63))
	assert.Equal(t, uint(0), x.Bit(640))
	assert.True(t, x.IsUint64())
	assert.Equal(t, uint64(0x8000000000000001), x.Uint64())
	assert.False(t, new(Int).Lsh(x, 1).IsUint64())
}

func TestWordsRoundTrip(t *testing.T) {
	x := MustParseHex("0102030405060708090A0B0C0D0E0F")
	y := new(Int).SetWords(append(x.Words(), 0, 0))
	assert.True(t, x.Equal(y))
	assert.Equal(t, x.Len(), y.Len())
}

func BenchmarkMul(b *testing.B) {
	rnd := newTestRand(3)
	x := randBits(b, rnd, 2048)
	y := randBits(b, rnd, 2048)
	z := new(Int)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.Mul(x, y)
	}
}

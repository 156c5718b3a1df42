package mpint

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestRand returns a deterministic byte stream for the given seed.
func newTestRand(seed byte) *rand.ChaCha8 {
	var s [32]byte
	s[0] = seed
	return rand.NewChaCha8(s)
}

// randBits returns a random value of at most bits bits.
func randBits(t testing.TB, rnd *rand.ChaCha8, bits int) *Int {
	t.Helper()
	limit := new(Int).Lsh(NewInt(1), uint(bits))
	z, err := RandomBelow(rnd, limit)
	require.NoError(t, err)
	return z
}

// toBig converts through the hex rendering so the two implementations
// only meet at the text boundary.
func toBig(t testing.TB, x *Int) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(x.Text(), 16)
	require.True(t, ok, "big.Int rejected %s", x.Text())
	return b
}

func fromBig(t testing.TB, b *big.Int) *Int {
	t.Helper()
	z, err := ParseHex(b.Text(16))
	require.NoError(t, err)
	return z
}

package mpint

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesBigEndian(t *testing.T) {
	rnd := newTestRand(60)
	for i := 0; i < 100; i++ {
		x := randBits(t, rnd, 1+i*13)
		b := x.Bytes()
		assert.Equal(t, toBig(t, x).Bytes(), b)
		assert.True(t, new(Int).SetBytes(b).Equal(x))
	}
	assert.Empty(t, new(Int).Bytes())
	assert.True(t, new(Int).SetBytes([]byte{0, 0, 0}).IsZero())
}

func TestSetBytesLEDigitLayout(t *testing.T) {
	buf := make([]byte, 2*WordBytes)
	buf[0] = 0x01
	buf[WordBytes] = 0x02
	buf[2*WordBytes-1] = 0x80

	x := new(Int).SetBytesLE(buf)
	require.Equal(t, 2, x.Len())
	w := x.Words()
	assert.Equal(t, Word(1), w[0])
	assert.Equal(t, Word(2)|Word(0x80)<<(WordBits-8), w[1])
}

func TestFillBytesLERoundTrip(t *testing.T) {
	rnd := newTestRand(61)
	for i := 0; i < 100; i++ {
		x := randBits(t, rnd, 8*(1+i%40))
		buf := make([]byte, 40)
		out, err := x.FillBytesLE(buf)
		require.NoError(t, err)
		assert.True(t, new(Int).SetBytesLE(out).Equal(x))

		// little-endian bytes are the reverse of the big-endian form
		be := x.Bytes()
		rev := make([]byte, len(be))
		for j := range be {
			rev[len(be)-1-j] = be[j]
		}
		assert.True(t, bytes.Equal(rev, out[:len(be)]))
		assert.True(t, bytes.Equal(make([]byte, 40-len(be)), out[len(be):]))
	}
}

func TestFillBytesLEShortBuffer(t *testing.T) {
	x := new(Int).SetBytes([]byte{1, 2, 3})
	_, err := x.FillBytesLE(make([]byte, 2))
	assert.ErrorIs(t, err, ErrShortBuffer)

	buf := []byte{9, 9, 9}
	out, err := new(Int).FillBytesLE(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, out)
}

func TestFormatVerbs(t *testing.T) {
	x := MustParseHex("00DeadBeef")
	assert.Equal(t, "DEADBEEF", x.String())
	assert.Equal(t, big.NewInt(0xdeadbeef).Text(16), toBig(t, x).Text(16))

	var nilInt *Int
	assert.Equal(t, "<nil>", fmt.Sprintf("%v", nilInt))
	assert.Equal(t, "deadbeef", fmt.Sprintf("%x", x))
	assert.Equal(t, "DEADBEEF", fmt.Sprintf("%X", x))
}

package mpint

import (
	"fmt"
	"strings"
)

// ParseHex returns the value of the big-endian hexadecimal string s.
// Upper- and lower-case digits and leading zeros are accepted, as is an
// optional "0x" prefix.
func ParseHex(s string) (*Int, error) {
	z, err := new(Int).SetHex(s)
	if err != nil {
		return nil, err
	}
	return z, nil
}

// MustParseHex is like ParseHex but panics on malformed input. It is
// meant for constants and fixtures.
func MustParseHex(s string) *Int {
	z, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return z
}

// SetHex sets z to the value of the big-endian hexadecimal string s.
// On error z is left unchanged.
func (z *Int) SetHex(s string) (*Int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidHex)
	}

	const digitsPerWord = _W / 4
	n := (len(s) + digitsPerWord - 1) / digitsPerWord
	abs := make(nat, n)

	// walk from the least significant character
	for i := 0; i < len(s); i++ {
		c := s[len(s)-1-i]
		var d Word
		switch {
		case '0' <= c && c <= '9':
			d = Word(c - '0')
		case 'a' <= c && c <= 'f':
			d = Word(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			d = Word(c - 'A' + 10)
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidHex, c, len(s)-1-i)
		}
		abs[i/digitsPerWord] |= d << (uint(i%digitsPerWord) * 4)
	}
	z.abs = abs.norm()
	return z, nil
}

// SetBytes interprets buf as a big-endian unsigned integer, sets z to
// that value and returns z.
func (z *Int) SetBytes(buf []byte) *Int {
	n := (len(buf) + _S - 1) / _S
	z.abs = z.abs.make(n)
	clear(z.abs)
	for i := 0; i < len(buf); i++ {
		b := buf[len(buf)-1-i]
		z.abs[i/_S] |= Word(b) << (uint(i%_S) * 8)
	}
	z.abs = z.abs.norm()
	return z
}

// Bytes returns the minimal big-endian encoding of x. Zero encodes as an
// empty slice.
func (x *Int) Bytes() []byte {
	buf := make([]byte, (x.BitLen()+7)/8)
	for i := range buf {
		buf[len(buf)-1-i] = byte(x.abs[i/_S] >> (uint(i%_S) * 8))
	}
	return buf
}

// SetBytesLE sets z to the value of buf read as consecutive digits, each
// stored least-significant byte first, least-significant digit first. A
// buffer of k*WordBytes bytes therefore maps onto exactly k digits. This
// is the packing used for message blocks.
func (z *Int) SetBytesLE(buf []byte) *Int {
	n := (len(buf) + _S - 1) / _S
	z.abs = z.abs.make(n)
	clear(z.abs)
	for i, b := range buf {
		z.abs[i/_S] |= Word(b) << (uint(i%_S) * 8)
	}
	z.abs = z.abs.norm()
	return z
}

// FillBytesLE writes x into buf in the SetBytesLE layout, zero-filling the
// unused high bytes. It returns ErrShortBuffer if x does not fit.
func (x *Int) FillBytesLE(buf []byte) ([]byte, error) {
	if need := (x.BitLen() + 7) / 8; need > len(buf) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, need, len(buf))
	}
	clear(buf)
	for i := range buf {
		j := i / _S
		if j >= len(x.abs) {
			break
		}
		buf[i] = byte(x.abs[j] >> (uint(i%_S) * 8))
	}
	return buf, nil
}

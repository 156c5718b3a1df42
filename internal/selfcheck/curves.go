package selfcheck

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

// Moduli with independent, heavily reviewed implementations.
var (
	// secp256k1 group order N
	secp256k1N = mpint.MustParseHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

	// secp256k1 field prime P
	secp256k1P = mpint.MustParseHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")

	// ed25519 group order ℓ = 2^252 + 27742317777372353535851937790883648493
	ed25519L = mpint.MustParseHex("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED")
)

// be32 returns x as 32 big-endian bytes. x must fit.
func be32(x *mpint.Int) [32]byte {
	var out [32]byte
	b := x.Bytes()
	copy(out[32-len(b):], b)
	return out
}

func randomBytes(rnd io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}
	return buf, nil
}

// Secp256k1Order checks Reduce, MulMod, Inverse and Exp modulo the
// secp256k1 group order against secp256k1.ModNScalar.
func Secp256k1Order(rnd io.Reader, rounds int) error {
	r := mpint.NewReducer(secp256k1N)
	nMinus2 := new(mpint.Int).Sub(secp256k1N, mpint.NewInt(2))

	for i := 0; i < rounds; i++ {
		bufA, err := randomBytes(rnd, 32)
		if err != nil {
			return err
		}
		bufB, err := randomBytes(rnd, 32)
		if err != nil {
			return err
		}

		var sa, sb secp256k1.ModNScalar
		sa.SetByteSlice(bufA)
		sb.SetByteSlice(bufB)
		a := r.Reduce(new(mpint.Int), new(mpint.Int).SetBytes(bufA))
		b := r.Reduce(new(mpint.Int), new(mpint.Int).SetBytes(bufB))
		if be32(a) != sa.Bytes() {
			return fmt.Errorf("%w: secp256k1 order: reduce of %X", ErrMismatch, bufA)
		}

		prod := r.MulMod(new(mpint.Int), a, b)
		var sp secp256k1.ModNScalar
		sp.Mul2(&sa, &sb)
		if be32(prod) != sp.Bytes() {
			return fmt.Errorf("%w: secp256k1 order: %s * %s", ErrMismatch, a, b)
		}

		if a.IsZero() {
			continue
		}
		inv, err := mpint.Inverse(a, secp256k1N)
		if err != nil {
			return fmt.Errorf("secp256k1 order: inverting %s: %w", a, err)
		}
		var si secp256k1.ModNScalar
		si.Set(&sa).InverseNonConst()
		if be32(inv) != si.Bytes() {
			return fmt.Errorf("%w: secp256k1 order: inverse of %s", ErrMismatch, a)
		}

		// Fermat: a^(N-2) is the inverse as well
		if pow := r.Exp(new(mpint.Int), a, nMinus2); !pow.Equal(inv) {
			return fmt.Errorf("%w: secp256k1 order: %s^(N-2)", ErrMismatch, a)
		}
	}
	return nil
}

// Secp256k1Field checks MulMod modulo the secp256k1 field prime against
// secp256k1.FieldVal.
func Secp256k1Field(rnd io.Reader, rounds int) error {
	r := mpint.NewReducer(secp256k1P)
	for i := 0; i < rounds; i++ {
		bufA, err := randomBytes(rnd, 32)
		if err != nil {
			return err
		}
		bufB, err := randomBytes(rnd, 32)
		if err != nil {
			return err
		}

		// FieldVal only reduces on multiplication, so feed it reduced input
		a := r.Reduce(new(mpint.Int), new(mpint.Int).SetBytes(bufA))
		b := r.Reduce(new(mpint.Int), new(mpint.Int).SetBytes(bufB))
		ab, bb := be32(a), be32(b)

		var fa, fb secp256k1.FieldVal
		if fa.SetByteSlice(ab[:]) || fb.SetByteSlice(bb[:]) {
			return fmt.Errorf("%w: secp256k1 field: reduced value overflowed", ErrMismatch)
		}
		fa.Mul(&fb).Normalize()

		if prod := r.MulMod(new(mpint.Int), a, b); be32(prod) != *fa.Bytes() {
			return fmt.Errorf("%w: secp256k1 field: %s * %s", ErrMismatch, a, b)
		}
	}
	return nil
}

// Ed25519Order checks Reduce of 512-bit values and MulMod modulo the
// ed25519 group order against edwards25519.Scalar, which works in
// little-endian bytes like the message block packing.
func Ed25519Order(rnd io.Reader, rounds int) error {
	r := mpint.NewReducer(ed25519L)
	for i := 0; i < rounds; i++ {
		wideA, err := randomBytes(rnd, 64)
		if err != nil {
			return err
		}
		wideB, err := randomBytes(rnd, 64)
		if err != nil {
			return err
		}

		sa, err := edwards25519.NewScalar().SetUniformBytes(wideA)
		if err != nil {
			return fmt.Errorf("ed25519 order: %w", err)
		}
		sb, err := edwards25519.NewScalar().SetUniformBytes(wideB)
		if err != nil {
			return fmt.Errorf("ed25519 order: %w", err)
		}

		a := r.Reduce(new(mpint.Int), new(mpint.Int).SetBytesLE(wideA))
		b := r.Reduce(new(mpint.Int), new(mpint.Int).SetBytesLE(wideB))
		if err := sameLE(a, sa.Bytes()); err != nil {
			return fmt.Errorf("ed25519 order: reduce: %w", err)
		}

		prod := r.MulMod(new(mpint.Int), a, b)
		if err := sameLE(prod, edwards25519.NewScalar().Multiply(sa, sb).Bytes()); err != nil {
			return fmt.Errorf("ed25519 order: %s * %s: %w", a, b, err)
		}
	}
	return nil
}

func sameLE(x *mpint.Int, want []byte) error {
	got, err := x.FillBytesLE(make([]byte, len(want)))
	if err != nil {
		return err
	}
	if string(got) != string(want) {
		return fmt.Errorf("%w: got %X, want %X", ErrMismatch, got, want)
	}
	return nil
}

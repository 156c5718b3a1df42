package rsakey

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

var (
	// ErrBlockTooLarge is returned when a block is not below the modulus
	// and would not survive the transform.
	ErrBlockTooLarge = errors.New("rsakey: block not below modulus")

	// ErrKeyCheck is returned when a key pair fails its invariants.
	ErrKeyCheck = errors.New("rsakey: key check failed")

	// ErrNoExponent is returned when every drawn exponent shared a factor
	// with φ(n).
	ErrNoExponent = errors.New("rsakey: no exponent coprime to phi")
)

// KeyPair is an RSA key pair {n, e, d} together with the factors p and q.
// It is immutable; accessors return copies.
type KeyPair struct {
	n, e, d, p, q *mpint.Int

	// bound to n for the life of the key
	reducer *mpint.Reducer
}

// FromPrimes builds the key pair for the primes p and q and the public
// exponent e, computing n = p*q and d = e^-1 mod (p-1)(q-1).
func FromPrimes(p, q, e *mpint.Int) (*KeyPair, error) {
	if p.Equal(q) {
		return nil, fmt.Errorf("%w: p equals q", ErrKeyCheck)
	}
	one := mpint.NewInt(1)
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: factors must exceed 1", ErrKeyCheck)
	}
	n := new(mpint.Int).Mul(p, q)
	phi := totient(p, q)

	d, err := mpint.Inverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("inverting e: %w", err)
	}
	kp := newKeyPair(n, e, d, p, q)
	if err := kp.Validate(); err != nil {
		return nil, err
	}
	return kp, nil
}

func newKeyPair(n, e, d, p, q *mpint.Int) *KeyPair {
	return &KeyPair{
		n:       n.Clone(),
		e:       e.Clone(),
		d:       d.Clone(),
		p:       p.Clone(),
		q:       q.Clone(),
		reducer: mpint.NewReducer(n),
	}
}

func totient(p, q *mpint.Int) *mpint.Int {
	one := mpint.NewInt(1)
	pm := new(mpint.Int).Sub(p, one)
	qm := new(mpint.Int).Sub(q, one)
	return pm.Mul(pm, qm)
}

// N returns the modulus.
func (k *KeyPair) N() *mpint.Int { return k.n.Clone() }

// E returns the public exponent.
func (k *KeyPair) E() *mpint.Int { return k.e.Clone() }

// D returns the private exponent.
func (k *KeyPair) D() *mpint.Int { return k.d.Clone() }

// P returns the first prime factor.
func (k *KeyPair) P() *mpint.Int { return k.p.Clone() }

// Q returns the second prime factor.
func (k *KeyPair) Q() *mpint.Int { return k.q.Clone() }

// Phi returns φ(n) = (p-1)(q-1).
func (k *KeyPair) Phi() *mpint.Int { return totient(k.p, k.q) }

// Reducer returns the Barrett reducer bound to n. It is shared, not
// copied; a Reducer never changes after construction.
func (k *KeyPair) Reducer() *mpint.Reducer { return k.reducer }

// Validate re-checks n = p*q, p != q and e*d ≡ 1 (mod φ(n)).
func (k *KeyPair) Validate() error {
	if k.p.Equal(k.q) {
		return fmt.Errorf("%w: p equals q", ErrKeyCheck)
	}
	if !new(mpint.Int).Mul(k.p, k.q).Equal(k.n) {
		return fmt.Errorf("%w: n != p*q", ErrKeyCheck)
	}
	phi := k.Phi()
	ed := new(mpint.Int).Mul(k.e, k.d)
	if !ed.Mod(ed, phi).Equal(mpint.NewInt(1)) {
		return fmt.Errorf("%w: e*d mod phi = %s", ErrKeyCheck, ed)
	}
	return nil
}

// Transform raises every block to exp modulo n and returns the results in
// a new slice. Every block must be below n; the first one that is not
// aborts the transform with ErrBlockTooLarge.
func (k *KeyPair) Transform(blocks []*mpint.Int, exp *mpint.Int) ([]*mpint.Int, error) {
	out := make([]*mpint.Int, len(blocks))
	for i, b := range blocks {
		if b.Cmp(k.n) >= 0 {
			return nil, fmt.Errorf("%w: block %d", ErrBlockTooLarge, i)
		}
		out[i] = k.reducer.Exp(new(mpint.Int), b, exp)
	}
	return out, nil
}

// Encrypt applies the public exponent to blocks.
func (k *KeyPair) Encrypt(blocks []*mpint.Int) ([]*mpint.Int, error) {
	return k.Transform(blocks, k.e)
}

// Decrypt applies the private exponent to blocks.
func (k *KeyPair) Decrypt(blocks []*mpint.Int) ([]*mpint.Int, error) {
	return k.Transform(blocks, k.d)
}

// String renders the public part of the key for diagnostics.
func (k *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{n=%s (%d bits), e=%s}", k.n, k.n.BitLen(), k.e)
}

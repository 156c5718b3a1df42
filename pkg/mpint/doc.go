// Package mpint implements the arbitrary-precision arithmetic needed to
// generate RSA keys and run RSA exponentiation.
//
// Values are non-negative integers stored as machine-word digits, least
// significant first, with leading zero digits always trimmed. On top of
// the digit arithmetic (add, subtract, compare, shift, schoolbook
// multiply and long division) the package provides:
//
//   - Barrett reduction bound to one modulus (Reducer)
//   - square-and-multiply modular exponentiation driven by a Reducer
//   - GCD, the Jacobi symbol and modular inverse by extended Euclid
//   - a Solovay–Strassen probable-prime test and a random prime generator
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/mprsa/pkg/mpint"
//
//	n := mpint.MustParseHex("ACD1")
//	r := mpint.NewReducer(n)
//
//	// c = m^e mod n, reusing r for every block of a message
//	c := r.Exp(new(mpint.Int), m, e)
//
//	// d = e^-1 mod phi
//	d, err := mpint.Inverse(e, phi)
//	if errors.Is(err, mpint.ErrNotInvertible) {
//	    // draw another e
//	}
//
//	// a 256-bit probable prime, 10 rounds
//	p, err := mpint.GeneratePrimeBits(rand.Reader, 256, mpint.DefaultTrials)
//
// # Failure modes
//
// Subtracting a larger value from a smaller one, dividing by zero and
// building a Reducer for zero panic with ErrUnderflow, ErrDivisionByZero
// and ErrZeroModulus. These are programming errors: the unsigned domain
// has no representation for the result. Everything a caller can
// legitimately get wrong at run time (malformed hex, empty ranges,
// non-coprime inverse requests, short buffers) is returned as an error.
//
// None of the code here is constant time.
package mpint

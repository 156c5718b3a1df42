// Package rsakey builds RSA key pairs on top of mpint and applies them to
// sequences of message blocks.
//
// # Quick Start
//
//	gen := rsakey.NewGenerator().WithConfig(rsakey.Config{
//	    Bits:             512,
//	    Trials:           10,
//	    Workers:          4,
//	    ExponentAttempts: 16,
//	})
//	kp, err := gen.Generate(ctx)
//	if err != nil {
//	    return err
//	}
//
//	c, err := kp.Encrypt(blocks) // every block must be below kp.N()
//	m, err := kp.Decrypt(c)
//
// Each KeyPair owns one Barrett reducer for its modulus and reuses it for
// every block it transforms. Blocks at or above the modulus are rejected
// with ErrBlockTooLarge rather than silently reduced.
//
// There is no padding scheme. This is textbook RSA for exercising the
// arithmetic, not for protecting data.
package rsakey

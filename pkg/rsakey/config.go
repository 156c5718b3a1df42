package rsakey

import (
	"fmt"

	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

// Config controls key generation.
type Config struct {
	// Bits is the size of each prime factor p and q.
	Bits int

	// ExponentBits is the size of the public exponent e, which is drawn as
	// a random prime. Zero means Bits.
	ExponentBits int

	// Trials is the number of primality rounds per candidate.
	Trials int

	// Workers controls parallel prime search (0 = auto-detect).
	Workers int

	// MaxCandidates caps candidates per prime search (0 = unbounded).
	MaxCandidates int64

	// ExponentAttempts is how many times e is re-drawn when it shares a
	// factor with φ(n).
	ExponentAttempts int
}

// DefaultConfig returns the settings the demo programs use: 256-bit
// primes, a 256-bit prime exponent and 10 primality rounds.
func DefaultConfig() Config {
	return Config{
		Bits:             256,
		ExponentBits:     0,
		Trials:           mpint.DefaultTrials,
		Workers:          1,
		MaxCandidates:    0,
		ExponentAttempts: 16,
	}
}

func (c Config) exponentBits() int {
	if c.ExponentBits == 0 {
		return c.Bits
	}
	return c.ExponentBits
}

// Validate reports the first setting that cannot produce a key.
func (c Config) Validate() error {
	switch {
	case c.Bits < 8:
		return fmt.Errorf("prime size must be at least 8 bits, got %d", c.Bits)
	case c.ExponentBits != 0 && (c.ExponentBits < 3 || c.ExponentBits > 2*c.Bits-2):
		return fmt.Errorf("exponent size must be in [3, %d] bits, got %d", 2*c.Bits-2, c.ExponentBits)
	case c.Trials < 1:
		return fmt.Errorf("need at least one primality round, got %d", c.Trials)
	case c.Workers < 0:
		return fmt.Errorf("worker count cannot be negative, got %d", c.Workers)
	case c.MaxCandidates < 0:
		return fmt.Errorf("candidate budget cannot be negative, got %d", c.MaxCandidates)
	case c.ExponentAttempts < 1:
		return fmt.Errorf("need at least one exponent attempt, got %d", c.ExponentAttempts)
	}
	return nil
}

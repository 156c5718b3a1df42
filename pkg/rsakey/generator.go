package rsakey

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/apex/log"

	"github.com/mahdiidarabi/mprsa/internal/primesearch"
	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

// Generator builds key pairs.
type Generator struct {
	cfg    Config
	rnd    io.Reader
	logger log.Interface
}

// NewGenerator creates a generator with DefaultConfig, crypto/rand and the
// package-level apex logger.
func NewGenerator() *Generator {
	return &Generator{
		cfg:    DefaultConfig(),
		rnd:    primesearch.LockedReader(rand.Reader),
		logger: log.Log,
	}
}

// WithConfig sets the generation settings.
func (g *Generator) WithConfig(cfg Config) *Generator {
	g.cfg = cfg
	return g
}

// WithRand sets the source of randomness. The reader is wrapped so that
// concurrent Generate calls can share it.
func (g *Generator) WithRand(rnd io.Reader) *Generator {
	g.rnd = primesearch.LockedReader(rnd)
	return g
}

// WithLogger sets the logger used for progress entries.
func (g *Generator) WithLogger(logger log.Interface) *Generator {
	g.logger = logger
	return g
}

// Config returns the generation settings.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate builds a key pair.
//
// p and q are drawn as probable primes of cfg.Bits bits, q again until it
// differs from p. e is drawn as a probable prime of cfg.ExponentBits bits
// and drawn again, up to cfg.ExponentAttempts times, while it shares a
// factor with φ(n). The finished pair is validated before it is returned.
func (g *Generator) Generate(ctx context.Context) (*KeyPair, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	start := time.Now()

	p, err := g.prime(ctx, g.cfg.Bits)
	if err != nil {
		return nil, fmt.Errorf("generating p: %w", err)
	}

	var q *mpint.Int
	for {
		q, err = g.prime(ctx, g.cfg.Bits)
		if err != nil {
			return nil, fmt.Errorf("generating q: %w", err)
		}
		if !q.Equal(p) {
			break
		}
		g.logger.Debug("q collided with p, drawing again")
	}

	n := new(mpint.Int).Mul(p, q)
	phi := totient(p, q)

	var e, d *mpint.Int
	for attempt := 1; ; attempt++ {
		if attempt > g.cfg.ExponentAttempts {
			return nil, fmt.Errorf("%w after %d attempts", ErrNoExponent, g.cfg.ExponentAttempts)
		}
		e, err = g.prime(ctx, g.cfg.exponentBits())
		if err != nil {
			return nil, fmt.Errorf("generating e: %w", err)
		}
		d, err = mpint.Inverse(e, phi)
		if errors.Is(err, mpint.ErrNotInvertible) {
			g.logger.WithField("attempt", attempt).Debug("e shares a factor with phi, drawing again")
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	kp := newKeyPair(n, e, d, p, q)
	if err := kp.Validate(); err != nil {
		return nil, err
	}

	g.logger.WithFields(log.Fields{
		"modulus_bits": n.BitLen(),
		"elapsed":      time.Since(start),
	}).Debug("key pair generated")
	return kp, nil
}

func (g *Generator) prime(ctx context.Context, bits int) (*mpint.Int, error) {
	min, max := mpint.BitRange(bits)
	res, err := primesearch.Search(ctx, g.rnd, primesearch.Options{
		Min:           min,
		Max:           max,
		Trials:        g.cfg.Trials,
		Workers:       g.cfg.Workers,
		MaxCandidates: g.cfg.MaxCandidates,
		Logger:        g.logger,
	})
	if err != nil {
		return nil, err
	}
	return res.Prime, nil
}

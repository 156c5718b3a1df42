package selfcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/apex/log"

	"github.com/mahdiidarabi/mprsa/internal/parser"
	"github.com/mahdiidarabi/mprsa/pkg/mpint"
	"github.com/mahdiidarabi/mprsa/pkg/rsakey"
)

var (
	// ErrMismatch is returned when the engine disagrees with a reference.
	ErrMismatch = errors.New("selfcheck: result mismatch")

	// ErrInvalidOptions is returned for settings no check can run with.
	ErrInvalidOptions = errors.New("selfcheck: invalid options")
)

const (
	// MinAccuracy is the agreement ratio the probabilistic checks must reach.
	MinAccuracy = 0.99

	// MinLimit is the smallest sweep bound. [1, 8) still holds 5, the only
	// candidate below it that is odd and not of the form 2^k - 1; below
	// that the prime generator has nothing to accept and never returns.
	MinLimit = 8
)

// Accuracy counts agreements with trial division.
type Accuracy struct {
	Total   int
	Correct int
}

// Ratio returns Correct/Total, or 0 for an empty count.
func (a Accuracy) Ratio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

func (a Accuracy) String() string {
	return fmt.Sprintf("%d/%d (%.2f%%)", a.Correct, a.Total, a.Ratio()*100)
}

func isPrimeTrial(n uint64) bool {
	if n < 2 {
		return false
	}
	for d := uint64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// PrimalityAccuracy runs ProbablyPrime on every integer in [2, limit) and
// counts how often it agrees with trial division.
func PrimalityAccuracy(rnd io.Reader, limit uint64, trials int) (Accuracy, error) {
	var acc Accuracy
	if limit < MinLimit {
		return acc, fmt.Errorf("%w: limit %d below %d", ErrInvalidOptions, limit, MinLimit)
	}
	for n := uint64(2); n < limit; n++ {
		got, err := mpint.ProbablyPrime(rnd, mpint.NewInt(n), trials)
		if err != nil {
			return acc, err
		}
		acc.Total++
		if got == isPrimeTrial(n) {
			acc.Correct++
		}
	}
	return acc, nil
}

// GeneratorAccuracy draws samples primes from [1, max) and counts how
// many trial division confirms.
func GeneratorAccuracy(rnd io.Reader, samples int, max uint64, trials int) (Accuracy, error) {
	var acc Accuracy
	if max < MinLimit {
		return acc, fmt.Errorf("%w: max %d below %d", ErrInvalidOptions, max, MinLimit)
	}
	lo, hi := mpint.NewInt(1), mpint.NewInt(max)
	for i := 0; i < samples; i++ {
		p, err := mpint.GeneratePrime(rnd, lo, hi, trials)
		if err != nil {
			return acc, err
		}
		acc.Total++
		if isPrimeTrial(p.Uint64()) {
			acc.Correct++
		}
	}
	return acc, nil
}

// InverseVectors rebuilds every key vector and checks e*d mod φ = 1 and,
// where the vector pins it, the value of d.
func InverseVectors(keys []*parser.KeyVector) error {
	for _, v := range keys {
		kp, err := rsakey.FromPrimes(v.P, v.Q, v.E)
		if err != nil {
			return fmt.Errorf("vector %q: %w", v.Name, err)
		}
		if v.D != nil && !kp.D().Equal(v.D) {
			return fmt.Errorf("%w: vector %q: d = %s, want %s", ErrMismatch, v.Name, kp.D(), v.D)
		}
	}
	return nil
}

// SumVectors checks every addition vector.
func SumVectors(sums []*parser.SumVector) error {
	for _, v := range sums {
		if got := new(mpint.Int).Add(v.A, v.B); !got.Equal(v.Sum) {
			return fmt.Errorf("%w: vector %q: %s + %s = %s, want %s", ErrMismatch, v.Name, v.A, v.B, got, v.Sum)
		}
	}
	return nil
}

// Options tunes Run.
type Options struct {
	// PrimalityLimit is the exclusive upper bound for PrimalityAccuracy.
	PrimalityLimit uint64

	// GeneratorSamples is the number of primes GeneratorAccuracy draws.
	GeneratorSamples int

	// Trials is the number of primality rounds.
	Trials int

	// CurveRounds is the number of random operands per curve check.
	CurveRounds int
}

// DefaultOptions sweeps [2, 10000) and draws 10000 primes below it.
func DefaultOptions() Options {
	return Options{
		PrimalityLimit:   10000,
		GeneratorSamples: 10000,
		Trials:           mpint.DefaultTrials,
		CurveRounds:      256,
	}
}

// Validate reports settings that would make a check meaningless or keep
// it from terminating.
func (o Options) Validate() error {
	switch {
	case o.PrimalityLimit < MinLimit:
		return fmt.Errorf("%w: primality limit %d below %d", ErrInvalidOptions, o.PrimalityLimit, MinLimit)
	case o.GeneratorSamples < 1:
		return fmt.Errorf("%w: generator samples must be at least 1, got %d", ErrInvalidOptions, o.GeneratorSamples)
	case o.Trials < 1:
		return fmt.Errorf("%w: trials must be at least 1, got %d", ErrInvalidOptions, o.Trials)
	case o.CurveRounds < 1:
		return fmt.Errorf("%w: curve rounds must be at least 1, got %d", ErrInvalidOptions, o.CurveRounds)
	}
	return nil
}

// Result is the outcome of one check.
type Result struct {
	Name    string
	Err     error
	Detail  string
	Elapsed time.Duration
}

// Passed reports whether the check succeeded.
func (r Result) Passed() bool { return r.Err == nil }

type check struct {
	name string
	run  func() (string, error)
}

// Run executes every check in order and returns one Result per check. It
// stops early only when ctx is cancelled, and runs nothing when opts does
// not validate.
func Run(ctx context.Context, rnd io.Reader, vectors *parser.VectorSet, opts Options, logger log.Interface) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Log
	}
	accuracy := func(acc Accuracy, err error) (string, error) {
		if err != nil {
			return "", err
		}
		if acc.Ratio() < MinAccuracy {
			return acc.String(), fmt.Errorf("accuracy %s below %.0f%%", acc, MinAccuracy*100)
		}
		return acc.String(), nil
	}

	checks := []check{
		{"sum vectors", func() (string, error) {
			return fmt.Sprintf("%d vectors", len(vectors.Sums)), SumVectors(vectors.Sums)
		}},
		{"inverse vectors", func() (string, error) {
			return fmt.Sprintf("%d vectors", len(vectors.Keys)), InverseVectors(vectors.Keys)
		}},
		{"primality accuracy", func() (string, error) {
			return accuracy(PrimalityAccuracy(rnd, opts.PrimalityLimit, opts.Trials))
		}},
		{"generator accuracy", func() (string, error) {
			return accuracy(GeneratorAccuracy(rnd, opts.GeneratorSamples, opts.PrimalityLimit, opts.Trials))
		}},
		{"secp256k1 group order", func() (string, error) {
			return fmt.Sprintf("%d rounds", opts.CurveRounds), Secp256k1Order(rnd, opts.CurveRounds)
		}},
		{"secp256k1 field prime", func() (string, error) {
			return fmt.Sprintf("%d rounds", opts.CurveRounds), Secp256k1Field(rnd, opts.CurveRounds)
		}},
		{"ed25519 group order", func() (string, error) {
			return fmt.Sprintf("%d rounds", opts.CurveRounds), Ed25519Order(rnd, opts.CurveRounds)
		}},
	}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		start := time.Now()
		detail, err := c.run()
		res := Result{Name: c.name, Err: err, Detail: detail, Elapsed: time.Since(start)}
		results = append(results, res)

		entry := logger.WithFields(log.Fields{
			"check":   c.name,
			"detail":  detail,
			"elapsed": res.Elapsed.Round(time.Millisecond),
		})
		if err != nil {
			entry.WithError(err).Error("FAIL")
		} else {
			entry.Info("ok")
		}
	}
	return results, nil
}

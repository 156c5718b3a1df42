package primesearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

// ErrBudgetExhausted is returned when the candidate budget runs out before
// a probable prime is found.
var ErrBudgetExhausted = errors.New("primesearch: candidate budget exhausted")

// errFound stops the remaining workers once one of them has a prime.
var errFound = errors.New("primesearch: found")

// Options configures one search.
type Options struct {
	// Min and Max bound the candidates to [Min, Max).
	Min, Max *mpint.Int

	// Trials is the number of primality rounds per candidate.
	Trials int

	// Workers is the number of parallel searchers (0 = number of CPUs).
	Workers int

	// MaxCandidates caps the number of candidates drawn (0 = unbounded).
	MaxCandidates int64

	Logger log.Interface
}

// Result is a found prime and what it cost.
type Result struct {
	Prime      *mpint.Int
	Candidates int64
	Elapsed    time.Duration
}

// Search draws candidates from [opts.Min, opts.Max) until one passes the
// primality test, the budget runs out or ctx is cancelled.
//
// Args:
//   - ctx: Context for cancellation.
//   - rnd: Source of randomness for both candidates and witnesses.
//   - opts: Range, rounds, parallelism and budget.
//
// Returns:
//   - Result with the prime, or ErrBudgetExhausted / the context error.
func Search(ctx context.Context, rnd io.Reader, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 1 {
		rnd = LockedReader(rnd)
	}
	trials := opts.Trials
	if trials <= 0 {
		trials = mpint.DefaultTrials
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Log
	}

	start := time.Now()
	var drawn atomic.Int64
	found := make(chan *mpint.Int, 1)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return worker(gctx, rnd, opts, trials, &drawn, found)
		})
	}
	err := g.Wait()

	res := &Result{Candidates: drawn.Load(), Elapsed: time.Since(start)}
	select {
	case p := <-found:
		res.Prime = p
		logger.WithFields(log.Fields{
			"bits":       p.BitLen(),
			"candidates": res.Candidates,
			"workers":    workers,
			"elapsed":    res.Elapsed,
		}).Debug("prime found")
		return res, nil
	default:
	}

	if errors.Is(err, ErrBudgetExhausted) {
		return nil, fmt.Errorf("%w after %d candidates", ErrBudgetExhausted, opts.MaxCandidates)
	}
	if err == nil {
		err = ctx.Err()
	}
	return nil, err
}

func worker(ctx context.Context, rnd io.Reader, opts Options, trials int, drawn *atomic.Int64, found chan<- *mpint.Int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n := drawn.Add(1); opts.MaxCandidates > 0 && n > opts.MaxCandidates {
			drawn.Add(-1)
			return ErrBudgetExhausted
		}

		c, err := mpint.PrimeCandidate(rnd, opts.Min, opts.Max)
		if err != nil {
			return err
		}
		ok, err := mpint.ProbablyPrime(rnd, c, trials)
		if err != nil {
			return err
		}
		if ok {
			select {
			case found <- c:
			default:
			}
			return errFound
		}
	}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// LockedReader serializes reads from r so it can be shared between
// goroutines.
func LockedReader(r io.Reader) io.Reader {
	if _, ok := r.(*lockedReader); ok {
		return r
	}
	return &lockedReader{r: r}
}

package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/mprsa/internal/codec"
	"github.com/mahdiidarabi/mprsa/pkg/mpint"
	"github.com/mahdiidarabi/mprsa/pkg/rsakey"
)

var (
	// ErrModulusTooSmall is returned for keys whose modulus is a single
	// word and cannot carry a message block.
	ErrModulusTooSmall = errors.New("bench: modulus too small for a message block")

	// ErrMismatch is returned when the round trip does not reproduce the
	// input.
	ErrMismatch = errors.New("bench: round trip output differs from input")
)

// Report describes one double-key round trip.
type Report struct {
	InputBytes    int
	KeyGeneration time.Duration
	Encryption    time.Duration
	Decryption    time.Duration
	Packing       time.Duration

	Ciphertext []*mpint.Int
	Output     []byte
}

// Total is key generation plus encryption plus decryption.
func (r *Report) Total() time.Duration {
	return r.KeyGeneration + r.Encryption + r.Decryption
}

// ProcessedBytes counts every byte once per transform; the data goes
// through four of them.
func (r *Report) ProcessedBytes() int64 {
	return int64(r.InputBytes) * 4
}

// BytesPerSecond is the transform throughput, excluding key generation.
func (r *Report) BytesPerSecond() float64 {
	d := (r.Encryption + r.Decryption).Seconds()
	if d == 0 {
		return 0
	}
	return float64(r.ProcessedBytes()) / d
}

// Fields renders r for structured logging.
func (r *Report) Fields() log.Fields {
	return log.Fields{
		"input":      humanize.Bytes(uint64(r.InputBytes)),
		"blocks":     len(r.Ciphertext),
		"keygen":     r.KeyGeneration.Round(time.Microsecond),
		"encryption": r.Encryption.Round(time.Microsecond),
		"decryption": r.Decryption.Round(time.Microsecond),
		"packing":    r.Packing.Round(time.Microsecond),
		"throughput": humanize.Bytes(uint64(r.BytesPerSecond())) + "/s",
	}
}

// Totals accumulates reports across runs.
type Totals struct {
	Runs  int
	Time  time.Duration
	Bytes int64
}

// Add returns t with r folded in.
func (t Totals) Add(r *Report) Totals {
	t.Runs++
	t.Time += r.Total()
	t.Bytes += r.ProcessedBytes()
	return t
}

// Fields renders t for structured logging.
func (t Totals) Fields() log.Fields {
	f := log.Fields{
		"runs":      t.Runs,
		"time":      t.Time.Round(time.Millisecond),
		"processed": humanize.Bytes(uint64(t.Bytes)),
	}
	if t.Runs > 0 {
		f["average"] = (t.Time / time.Duration(t.Runs)).Round(time.Millisecond)
	}
	return f
}

// Harness runs timed key generation and round trips.
type Harness struct {
	gen    *rsakey.Generator
	logger log.Interface
}

// New creates a harness drawing keys from gen.
func New(gen *rsakey.Generator) *Harness {
	return &Harness{gen: gen, logger: log.Log}
}

// WithLogger sets the logger for progress entries.
func (h *Harness) WithLogger(logger log.Interface) *Harness {
	h.logger = logger
	return h
}

// RoundTrip generates key pairs A and B concurrently and runs
// RoundTripWithKeys on them.
func (h *Harness) RoundTrip(ctx context.Context, input []byte) (*Report, error) {
	start := time.Now()

	var a, b *rsakey.KeyPair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = h.gen.Generate(gctx)
		if err != nil {
			return fmt.Errorf("key A: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		b, err = h.gen.Generate(gctx)
		if err != nil {
			return fmt.Errorf("key B: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	keygen := time.Since(start)
	h.logger.WithField("elapsed", keygen).Info("generated keys A and B")

	r, err := h.RoundTripWithKeys(a, b, input)
	if err != nil {
		return nil, err
	}
	r.KeyGeneration = keygen
	return r, nil
}

// RoundTripWithKeys computes C = Eb(Da(M)) and then Ea(Db(C)), checking
// the result against the input.
//
// M is packed one word narrower than nA. Da's output can use all of nA's
// words, so it is repacked one word narrower than nB before Eb, and the
// reverse on the way back.
func (h *Harness) RoundTripWithKeys(a, b *rsakey.KeyPair, input []byte) (*Report, error) {
	na, nb := a.N(), b.N()
	wa, wb := codec.BlockWordsFor(na), codec.BlockWordsFor(nb)
	if wa == 0 || wb == 0 {
		return nil, ErrModulusTooSmall
	}
	r := &Report{InputBytes: len(input)}

	packStart := time.Now()
	blocks, err := codec.Pack(input, wa)
	if err != nil {
		return nil, err
	}
	r.Packing += time.Since(packStart)

	start := time.Now()
	c, err := a.Decrypt(blocks)
	if err != nil {
		return nil, fmt.Errorf("Da: %w", err)
	}
	packStart = time.Now()
	c, err = codec.Repack(c, na.Len(), wb)
	if err != nil {
		return nil, err
	}
	packed := time.Since(packStart)
	r.Packing += packed
	c, err = b.Encrypt(c)
	if err != nil {
		return nil, fmt.Errorf("Eb: %w", err)
	}
	r.Encryption = time.Since(start) - packed
	r.Ciphertext = c
	h.logger.WithField("blocks", len(c)).Debug("encrypted")

	start = time.Now()
	m, err := b.Decrypt(c)
	if err != nil {
		return nil, fmt.Errorf("Db: %w", err)
	}
	packStart = time.Now()
	m, err = codec.Repack(m, wb, na.Len())
	if err != nil {
		return nil, err
	}
	packed = time.Since(packStart)
	r.Packing += packed
	m, err = a.Encrypt(m)
	if err != nil {
		return nil, fmt.Errorf("Ea: %w", err)
	}
	r.Decryption = time.Since(start) - packed

	packStart = time.Now()
	out, err := codec.Unpack(m, wa)
	if err != nil {
		return nil, err
	}
	r.Packing += time.Since(packStart)

	if len(out) < len(input) || !bytes.Equal(out[:len(input)], input) {
		return nil, ErrMismatch
	}
	r.Output = out[:len(input)]
	return r, nil
}

// KeyGenReport summarizes repeated key generation.
type KeyGenReport struct {
	Runs    int
	Total   time.Duration
	Average time.Duration
}

// KeyGeneration generates runs key pairs one after another and reports
// the average time, logging the running average after each run.
func (h *Harness) KeyGeneration(ctx context.Context, runs int) (*KeyGenReport, error) {
	if runs < 1 {
		return nil, fmt.Errorf("need at least one run, got %d", runs)
	}
	start := time.Now()
	for i := 0; i < runs; i++ {
		if _, err := h.gen.Generate(ctx); err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		h.logger.WithFields(log.Fields{
			"run":             i,
			"running_average": (time.Since(start) / time.Duration(i+1)).Round(time.Microsecond),
		}).Debug("key pair generated")
	}
	total := time.Since(start)
	return &KeyGenReport{
		Runs:    runs,
		Total:   total,
		Average: total / time.Duration(runs),
	}, nil
}

package bench

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/mprsa/fixtures"
	"github.com/mahdiidarabi/mprsa/internal/parser"
	"github.com/mahdiidarabi/mprsa/pkg/mpint"
	"github.com/mahdiidarabi/mprsa/pkg/rsakey"
)

var testPattern = []byte{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xFF,
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
}

func testRand(seed byte) *rand.ChaCha8 {
	var s [32]byte
	s[0] = seed
	return rand.NewChaCha8(s)
}

func testHarness(seed byte, bits int) (*Harness, *memory.Handler) {
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	cfg := rsakey.DefaultConfig()
	cfg.Bits = bits
	gen := rsakey.NewGenerator().WithConfig(cfg).WithRand(testRand(seed)).WithLogger(logger)
	return New(gen).WithLogger(logger), h
}

func fixtureKeys(t *testing.T) []*rsakey.KeyPair {
	t.Helper()
	set, err := parser.ParseFile(fixtures.FS, fixtures.VectorsJSON)
	require.NoError(t, err)
	var keys []*rsakey.KeyPair
	for _, v := range set.Keys {
		kp, err := rsakey.FromPrimes(v.P, v.Q, v.E)
		require.NoError(t, err, v.Name)
		keys = append(keys, kp)
	}
	return keys
}

func TestRoundTripWithFixtureKeys(t *testing.T) {
	keys := fixtureKeys(t)
	mid, large := keys[1], keys[2]
	h, _ := testHarness(1, 64)

	inputs := [][]byte{
		testPattern,
		[]byte("The quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0xFF}, 1000),
		{},
	}
	for _, in := range inputs {
		for _, pair := range [][2]*rsakey.KeyPair{{mid, large}, {large, mid}, {mid, mid}} {
			r, err := h.RoundTripWithKeys(pair[0], pair[1], in)
			require.NoError(t, err)
			assert.Equal(t, in, r.Output)
			assert.Equal(t, len(in), r.InputBytes)
			for _, c := range r.Ciphertext {
				assert.Equal(t, -1, c.Cmp(pair[1].N()))
			}
		}
	}
}

func TestRoundTripRejectsSingleWordModulus(t *testing.T) {
	keys := fixtureKeys(t)
	h, _ := testHarness(2, 64)
	_, err := h.RoundTripWithKeys(keys[0], keys[1], testPattern)
	assert.ErrorIs(t, err, ErrModulusTooSmall)
}

func TestRoundTripGeneratesKeys(t *testing.T) {
	h, logs := testHarness(3, 96)
	r, err := h.RoundTrip(context.Background(), testPattern)
	require.NoError(t, err)
	assert.Equal(t, testPattern, r.Output)
	assert.Positive(t, r.KeyGeneration)
	assert.GreaterOrEqual(t, r.Total(), r.KeyGeneration)
	assert.Equal(t, int64(4*len(testPattern)), r.ProcessedBytes())

	var messages []string
	for _, e := range logs.Entries {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "generated keys A and B")
}

func TestRoundTripCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h, _ := testHarness(4, 64)
	_, err := h.RoundTrip(ctx, testPattern)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeyGeneration(t *testing.T) {
	h, logs := testHarness(5, 32)
	r, err := h.KeyGeneration(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Runs)
	assert.Equal(t, r.Total/3, r.Average)

	runs := 0
	for _, e := range logs.Entries {
		if e.Fields.Get("running_average") != nil {
			runs++
		}
	}
	assert.Equal(t, 3, runs)

	_, err = h.KeyGeneration(context.Background(), 0)
	assert.Error(t, err)
}

func TestTotals(t *testing.T) {
	var tot Totals
	tot = tot.Add(&Report{InputBytes: 100, KeyGeneration: time.Second, Encryption: time.Second, Decryption: time.Second})
	tot = tot.Add(&Report{InputBytes: 50, Encryption: time.Second})
	assert.Equal(t, 2, tot.Runs)
	assert.Equal(t, 4*time.Second, tot.Time)
	assert.Equal(t, int64(600), tot.Bytes)
	assert.Equal(t, 2*time.Second, tot.Fields()["average"])
}

func TestReportFields(t *testing.T) {
	r := &Report{InputBytes: 2000, Encryption: time.Second, Decryption: time.Second, Ciphertext: make([]*mpint.Int, 5)}
	assert.InDelta(t, 4000.0, r.BytesPerSecond(), 0.001)

	f := r.Fields()
	assert.Equal(t, "2.0 kB", f["input"])
	assert.Equal(t, "4.0 kB/s", f["throughput"])
	assert.Equal(t, 5, f["blocks"])
	assert.True(t, strings.HasSuffix(f["throughput"].(string), "/s"))

	assert.Zero(t, (&Report{}).BytesPerSecond())
}

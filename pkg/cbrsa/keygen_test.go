package cbrsa_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/internal/testrand"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/logging"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/metrics"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/retry"
)

type countingObserver struct {
	primesAccepted    int
	primesRejected    int
	exponentsAccepted int
	exponentsRejected int
	generated         []int
}

func (o *countingObserver) PrimeCandidate(accepted bool) {
	if accepted {
		o.primesAccepted++
	} else {
		o.primesRejected++
	}
}

func (o *countingObserver) ExponentCandidate(accepted bool) {
	if accepted {
		o.exponentsAccepted++
	} else {
		o.exponentsRejected++
	}
}

func (o *countingObserver) KeyGenerated(bits int, _ time.Duration) {
	o.generated = append(o.generated, bits)
}

func TestGenerateKeysDefaultSource(t *testing.T) {
	pub, priv, err := cbrsa.GenerateKeys(64)
	require.NoError(t, err)

	n := pub.N()
	assert.Equal(t, 0, n.Cmp(priv.N()))
	assert.True(t, n.BitLen() == 127 || n.BitLen() == 128, "modulus has %d bits", n.BitLen())
	assert.Equal(t, 1, pub.E().Sign())
	assert.Equal(t, -1, pub.E().Cmp(n))

	ct, err := cbrsa.Encrypt(pub, "Hello")
	require.NoError(t, err)
	pt, err := cbrsa.Decrypt(priv, ct)
	require.NoError(t, err)
	assert.Equal(t, "Hello", pt)
}

func TestGenerateIsReproducibleWithSeededSource(t *testing.T) {
	a := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: testrand.New("keygen/repro")})
	b := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: testrand.New("keygen/repro")})

	pubA, privA, err := a.Generate(context.Background(), 32)
	require.NoError(t, err)
	pubB, privB, err := b.Generate(context.Background(), 32)
	require.NoError(t, err)

	assert.True(t, pubA.Equal(pubB))
	assert.Equal(t, 0, privA.D().Cmp(privB.D()))
}

func TestGenerateDistinctKeys(t *testing.T) {
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: testrand.New("keygen/distinct")})
	first, _, err := gen.Generate(context.Background(), 32)
	require.NoError(t, err)
	second, _, err := gen.Generate(context.Background(), 32)
	require.NoError(t, err)
	assert.False(t, first.Equal(second))
}

func TestGenerateInvalidBits(t *testing.T) {
	for _, bits := range []int{-8, 0, 1} {
		_, _, err := cbrsa.GenerateKeys(bits)
		assert.ErrorIs(t, err, cbrsa.ErrInvalidBits, "bits=%d", bits)

		var opErr *cbrsa.Error
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, "Generate", opErr.Op)
	}
}

func TestGenerateDegenerateTotient(t *testing.T) {
	// A zero stream makes both 2-bit primes equal to 2, so lcm(1, 1) = 1.
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: bytes.NewReader(make([]byte, 8))})
	_, _, err := gen.Generate(context.Background(), 2)
	assert.ErrorIs(t, err, cbrsa.ErrDegenerateTotient)
}

func TestGenerateUnitExponentIsAccepted(t *testing.T) {
	// p = 2, q = 3 leaves φ = 2, so e = 1 is the only choice and encryption
	// is the identity.
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: bytes.NewReader([]byte{0x00, 0x01})})
	pub, priv, err := gen.Generate(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(1), pub.E().Int64())
	assert.Equal(t, int64(1), priv.D().Int64())
	assert.Equal(t, int64(6), pub.N().Int64())

	ct, err := cbrsa.Encrypt(pub, "\x00\x01\x05")
	require.NoError(t, err)
	for i, c := range ct {
		assert.Equal(t, []int64{0, 1, 5}[i], c.Int64())
	}
}

func TestGenerateEntropyFailure(t *testing.T) {
	sentinel := errors.New("entropy source unavailable")
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: testrand.FailingReader{Err: sentinel}})

	_, _, err := gen.Generate(context.Background(), 32)
	assert.ErrorIs(t, err, sentinel)
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := cbrsa.NewKeyGenerator(cbrsa.Config{}).Generate(ctx, 64)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateBoundedPrimeSearch(t *testing.T) {
	// 0xFE with the top bit forced stays 254, which is never prime.
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{
		Rand:             bytes.NewReader(bytes.Repeat([]byte{0xFE}, 16)),
		MaxPrimeAttempts: 4,
	})
	_, _, err := gen.Generate(context.Background(), 8)
	assert.ErrorIs(t, err, retry.ErrExhausted)
}

func TestGenerateObserver(t *testing.T) {
	obs := &countingObserver{}
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: testrand.New("keygen/observer"), Observer: obs})

	_, _, err := gen.Generate(context.Background(), 64)
	require.NoError(t, err)

	assert.Equal(t, 2, obs.primesAccepted)
	assert.Equal(t, 1, obs.exponentsAccepted)
	assert.Equal(t, []int{64}, obs.generated)
}

func TestGenerateRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{
		Rand:     testrand.New("keygen/metrics"),
		Observer: metrics.NewRecorder(reg),
	})

	for i := 0; i < 3; i++ {
		_, _, err := gen.Generate(context.Background(), 32)
		require.NoError(t, err)
	}

	expected := `
# HELP cbrsa_keys_generated_total number of key pairs generated, by prime size
# TYPE cbrsa_keys_generated_total counter
cbrsa_keys_generated_total{bits="32"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "cbrsa_keys_generated_total"))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "cbrsa_prime_candidates_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetLabel()[0].GetValue() == "accepted" {
				assert.Equal(t, float64(6), m.GetCounter().GetValue())
			}
		}
	}
}

func TestGenerateNeverLogsSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{
		Rand:   testrand.New("keygen/logging"),
		Logger: logging.NewZap(zap.New(core)),
	})

	_, priv, err := gen.Generate(context.Background(), 32)
	require.NoError(t, err)
	d := priv.D().String()

	var sawRedactedD, sawDone bool
	for _, entry := range logs.All() {
		for k, v := range entry.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, d, "field %q of %q", k, entry.Message)
			}
		}
		if entry.ContextMap()["d"] == logging.Placeholder() {
			sawRedactedD = true
		}
		if entry.Message == "key pair generated" {
			sawDone = true
			assert.Equal(t, "keygen", entry.ContextMap()["component"])
		}
	}
	assert.True(t, sawRedactedD)
	assert.True(t, sawDone)
}

func TestGenerateConcurrentUse(t *testing.T) {
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{})

	const workers = 8
	pubs := make([]*cbrsa.PublicKey, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pubs[i], _, errs[i] = gen.Generate(context.Background(), 64)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		key := pubs[i].N().String()
		assert.False(t, seen[key], "duplicate modulus")
		seen[key] = true
	}
}

func TestPrimeSizesAreExact(t *testing.T) {
	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Rand: testrand.New("keygen/sizes")})
	for _, bits := range []int{8, 16, 32, 128} {
		pub, _, err := gen.Generate(context.Background(), bits)
		require.NoError(t, err)
		// Two bits-bit primes multiply to 2·bits-1 or 2·bits bits.
		nb := pub.N().BitLen()
		assert.True(t, nb == 2*bits || nb == 2*bits-1, "bits=%d modulus=%d", bits, nb)
		assert.False(t, pub.N().ProbablyPrime(20))
	}
}

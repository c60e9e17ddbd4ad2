package cbrsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/logging"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/numtheory"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/prime"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/retry"
)

var one = big.NewInt(1)

// KeyGenerator produces textbook RSA key pairs.
type KeyGenerator struct {
	rand           io.Reader
	primes         prime.Generator
	exponentPolicy retry.Policy
	logger         logging.Logger
	observer       Observer
}

// NewKeyGenerator returns a KeyGenerator configured by cfg.
func NewKeyGenerator(cfg Config) *KeyGenerator {
	r := cfg.Rand
	if r == nil {
		r = rand.Reader
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &KeyGenerator{
		rand: r,
		primes: prime.Generator{
			Rand:        r,
			Rounds:      cfg.PrimeRounds,
			Policy:      retry.Bounded(cfg.MaxPrimeAttempts),
			OnCandidate: observer.PrimeCandidate,
		},
		exponentPolicy: retry.Bounded(cfg.MaxExponentAttempts),
		logger:         logger.With("component", "keygen"),
		observer:       observer,
	}
}

// keyMaterial is every value produced along the way. Only e, d and n leave
// Generate; the rest is wiped.
type keyMaterial struct {
	p, q, n, phi, e, d *big.Int
}

func (km *keyMaterial) zeroizeSecrets() {
	ZeroizeInt(km.p)
	ZeroizeInt(km.q)
	ZeroizeInt(km.phi)
}

// Generate draws two independent primes of bits bits and derives a key pair
// from them:
//
//	n = p·q
//	φ = lcm(p-1, q-1)
//	e uniform in [1, φ-1] with gcd(e, φ) = 1
//	d = e⁻¹ mod φ
//
// p and q are not required to differ, and e = 1 is not rejected. Both only
// matter for tiny prime sizes.
func (g *KeyGenerator) Generate(ctx context.Context, bits int) (*PublicKey, *PrivateKey, error) {
	start := time.Now()

	km, err := g.generate(ctx, bits)
	if err != nil {
		g.logger.Error(ctx, "key generation failed", "bits", bits, "error", err)
		return nil, nil, &Error{Op: "Generate", Err: err}
	}
	defer km.zeroizeSecrets()

	pub := &PublicKey{e: km.e, n: km.n}
	priv := &PrivateKey{d: km.d, n: new(big.Int).Set(km.n)}

	elapsed := time.Since(start)
	g.observer.KeyGenerated(bits, elapsed)
	g.logger.Info(ctx, "key pair generated",
		"bits", bits,
		"modulus_bits", km.n.BitLen(),
		"elapsed", elapsed,
	)
	return pub, priv, nil
}

func (g *KeyGenerator) generate(ctx context.Context, bits int) (*keyMaterial, error) {
	p, err := g.primes.Generate(ctx, bits)
	if err != nil {
		return nil, fmt.Errorf("generate p: %w", err)
	}
	g.logger.Debug(ctx, "prime generated", "bits", bits, logging.Redacted("p"))

	q, err := g.primes.Generate(ctx, bits)
	if err != nil {
		ZeroizeInt(p)
		return nil, fmt.Errorf("generate q: %w", err)
	}
	g.logger.Debug(ctx, "prime generated", "bits", bits, logging.Redacted("q"))

	km := &keyMaterial{p: p, q: q}
	km.n = new(big.Int).Mul(p, q)
	km.phi = numtheory.LCM(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))

	if km.phi.Cmp(one) <= 0 {
		km.zeroizeSecrets()
		return nil, fmt.Errorf("%w: lcm(p-1, q-1) = %s", ErrDegenerateTotient, km.phi)
	}

	e, attempts, err := g.selectExponent(ctx, km.phi)
	if err != nil {
		km.zeroizeSecrets()
		return nil, fmt.Errorf("select public exponent: %w", err)
	}
	km.e = e
	g.logger.Debug(ctx, "public exponent selected", "attempts", attempts, "exponent_bits", e.BitLen())

	km.d, err = numtheory.ModInverse(e, km.phi)
	if err != nil {
		km.zeroizeSecrets()
		return nil, fmt.Errorf("derive private exponent: %w", err)
	}
	g.logger.Debug(ctx, "private exponent derived", logging.Redacted("d"))

	return km, nil
}

// selectExponent draws e uniformly from [1, φ-1] until gcd(e, φ) = 1.
func (g *KeyGenerator) selectExponent(ctx context.Context, phi *big.Int) (*big.Int, int, error) {
	limit := new(big.Int).Sub(phi, one)

	return retry.Until(ctx, g.exponentPolicy,
		func() (*big.Int, error) {
			e, err := rand.Int(g.rand, limit)
			if err != nil {
				return nil, fmt.Errorf("read random exponent: %w", err)
			}
			return e.Add(e, one), nil
		},
		func(e *big.Int) bool {
			ok := numtheory.Coprime(e, phi)
			g.observer.ExponentCandidate(ok)
			return ok
		},
	)
}

// GenerateKeys generates a key pair from two primes of bits bits each, drawing
// from crypto/rand with default settings.
func GenerateKeys(bits int) (*PublicKey, *PrivateKey, error) {
	return NewKeyGenerator(Config{}).Generate(context.Background(), bits)
}

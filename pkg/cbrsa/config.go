package cbrsa

import (
	"io"
	"time"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/logging"
)

// DefaultBits is the prime size used by the demonstration driver. The modulus
// is roughly twice as long.
const DefaultBits = 1024

// Config holds the knobs of a KeyGenerator. The zero value draws from
// crypto/rand, uses 64 Miller-Rabin rounds, never caps a search and discards
// logs and events.
type Config struct {
	// Rand is the entropy source for primes and the public exponent. It must
	// be safe for concurrent use if the KeyGenerator is shared.
	Rand io.Reader

	// PrimeRounds is the Miller-Rabin round count. Zero means
	// prime.DefaultRounds.
	PrimeRounds int

	// MaxPrimeAttempts caps the candidates tested per prime. Zero is unbounded.
	MaxPrimeAttempts int

	// MaxExponentAttempts caps the public exponent draws. Zero is unbounded.
	MaxExponentAttempts int

	Logger   logging.Logger
	Observer Observer
}

// Observer receives key-generation events. metrics.Recorder implements it.
type Observer interface {
	PrimeCandidate(accepted bool)
	ExponentCandidate(accepted bool)
	KeyGenerated(bits int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) PrimeCandidate(bool)             {}
func (nopObserver) ExponentCandidate(bool)          {}
func (nopObserver) KeyGenerated(int, time.Duration) {}

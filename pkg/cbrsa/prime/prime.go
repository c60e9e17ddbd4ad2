package prime

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/retry"
)

// DefaultRounds is the number of Miller-Rabin rounds used when a Generator does
// not set Rounds. 64 rounds bound the false-positive rate by 4^-64 = 2^-128.
const DefaultRounds = 64

// MinBits is the smallest bit length Generate accepts.
const MinBits = 2

// ErrInvalidBits is returned for bit lengths below MinBits.
var ErrInvalidBits = errors.New("prime: bit length too small")

// Generator draws random primes of a fixed bit length.
//
// The zero value is ready to use and draws from crypto/rand with DefaultRounds
// and no attempt cap. A Generator holds no mutable state, so it may be shared
// across goroutines provided Rand is safe for concurrent use.
type Generator struct {
	// Rand is the entropy source. Nil means crypto/rand.Reader.
	Rand io.Reader

	// Rounds is the Miller-Rabin round count. Values <= 0 mean DefaultRounds.
	Rounds int

	// Policy caps the number of candidates. The zero Policy is unbounded.
	Policy retry.Policy

	// OnCandidate, if set, is called once per tested candidate.
	OnCandidate func(accepted bool)
}

// Generate returns a probable prime with exactly bits bits: the most
// significant bit is always set. Every attempt consumes fresh entropy from
// g.Rand; a read failure ends the search and is returned wrapped.
func (g *Generator) Generate(ctx context.Context, bits int) (*big.Int, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidBits, bits, MinBits)
	}

	r := g.reader()
	rounds := g.rounds()

	p, _, err := retry.Until(ctx, g.Policy,
		func() (*big.Int, error) { return RandomBits(r, bits) },
		func(n *big.Int) bool {
			ok := IsProbablePrime(n, rounds)
			if g.OnCandidate != nil {
				g.OnCandidate(ok)
			}
			return ok
		},
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Generator) reader() io.Reader {
	if g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}

func (g *Generator) rounds() int {
	if g.Rounds <= 0 {
		return DefaultRounds
	}
	return g.Rounds
}

// Generate returns a probable prime of exactly bits bits drawn from
// crypto/rand, using the zero Generator.
func Generate(ctx context.Context, bits int) (*big.Int, error) {
	var g Generator
	return g.Generate(ctx, bits)
}

// RandomBits reads a uniformly random integer of exactly bits bits from r. The
// top bit is forced to one and the remaining bits-1 bits are uniform.
func RandomBits(r io.Reader, bits int) (*big.Int, error) {
	if bits < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBits, bits)
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("prime: read random bits: %w", err)
	}

	excess := uint(len(buf)*8 - bits)
	buf[0] &= byte(0xff >> excess)
	buf[0] |= byte(0x80 >> excess)

	return new(big.Int).SetBytes(buf), nil
}

// IsProbablePrime runs rounds of Miller-Rabin (plus the Baillie-PSW test that
// math/big always applies) on n. Values below 2 are never prime.
func IsProbablePrime(n *big.Int, rounds int) bool {
	if n == nil || n.Sign() <= 0 {
		return false
	}
	if rounds < 0 {
		rounds = 0
	}
	return n.ProbablyPrime(rounds)
}

// Package prime generates random probable primes of an exact bit length.
//
// Candidates are drawn from an injected io.Reader (crypto/rand by default) and
// tested with math/big's probabilistic primality test. The search is expressed
// through package retry: it redraws until a candidate passes, with no cap unless
// the Generator's Policy sets one.
//
//	g := prime.Generator{Rand: rand.Reader}
//	p, err := g.Generate(ctx, 1024)
//
// Tests substitute a seeded reader for Rand to make the search reproducible.
package prime

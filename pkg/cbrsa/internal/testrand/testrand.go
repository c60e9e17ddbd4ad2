// Package testrand provides a seeded, deterministic byte stream for tests.
//
// WARNING: the output is fully determined by the seed. Never use it for real
// key material.
package testrand

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"io"
	"math/big"
	"sync"
	"testing"

	"golang.org/x/crypto/hkdf"
)

const (
	salt = "cb-rsa-go/testrand"

	// blockSize is the most HKDF-SHA-512 can expand from one PRK.
	blockSize = 255 * sha512.Size
)

// Reader expands a seed into an unbounded deterministic stream by chaining
// HKDF-SHA-512 expansions, one per block counter. It is safe for concurrent use.
type Reader struct {
	mu    sync.Mutex
	seed  []byte
	block uint64
	cur   io.Reader
	left  int
}

// New returns a Reader seeded with the given label.
func New(seed string) *Reader {
	return &Reader{seed: []byte(seed)}
}

func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for n < len(p) {
		if r.cur == nil || r.left == 0 {
			r.next()
		}
		chunk := p[n:]
		if len(chunk) > r.left {
			chunk = chunk[:r.left]
		}
		m, err := io.ReadFull(r.cur, chunk)
		n += m
		r.left -= m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *Reader) next() {
	var info [8]byte
	binary.BigEndian.PutUint64(info[:], r.block)
	r.block++
	r.cur = hkdf.New(sha512.New, r.seed, []byte(salt), info[:])
	r.left = blockSize
}

// Int draws a uniform integer in [0, 2^bits) from r, failing the test on error.
func Int(tb testing.TB, r io.Reader, bits int) *big.Int {
	tb.Helper()
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	v, err := rand.Int(r, max)
	if err != nil {
		tb.Fatalf("testrand: draw %d-bit integer: %v", bits, err)
	}
	return v
}

// FailingReader returns err on every Read. Use it to exercise entropy failures.
type FailingReader struct {
	Err error
}

func (f FailingReader) Read([]byte) (int, error) {
	return 0, f.Err
}

// CountingReader wraps a reader and counts the bytes drawn through it.
type CountingReader struct {
	R io.Reader

	mu sync.Mutex
	n  int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.mu.Lock()
	c.n += int64(n)
	c.mu.Unlock()
	return n, err
}

// Count returns the number of bytes read so far.
func (c *CountingReader) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

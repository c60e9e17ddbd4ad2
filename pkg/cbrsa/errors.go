package cbrsa

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/prime"
)

var (
	// ErrInvalidKey indicates a nil key or a key with a non-positive component.
	ErrInvalidKey = errors.New("cbrsa: invalid key")

	// ErrKeyZeroized indicates the private key was wiped with Zeroize.
	ErrKeyZeroized = errors.New("cbrsa: key has been zeroized")

	// ErrSymbolOutOfRange indicates a plaintext symbol whose code point is not
	// below the modulus. Such a symbol cannot round-trip.
	ErrSymbolOutOfRange = errors.New("cbrsa: symbol not below modulus")

	// ErrCiphertextOutOfRange indicates a ciphertext integer that is nil or
	// outside [0, n).
	ErrCiphertextOutOfRange = errors.New("cbrsa: ciphertext value outside [0, n)")

	// ErrInvalidCodePoint indicates plaintext that is not valid UTF-8, or a
	// decrypted value that is not a Unicode scalar value.
	ErrInvalidCodePoint = errors.New("cbrsa: invalid code point")

	// ErrDegenerateTotient is returned when lcm(p-1, q-1) leaves no room for a
	// public exponent. It only happens for p = q = 2.
	ErrDegenerateTotient = errors.New("cbrsa: degenerate totient")

	// ErrInvalidBits is returned for prime sizes below prime.MinBits.
	ErrInvalidBits = prime.ErrInvalidBits
)

// Error wraps an underlying error with the operation that failed.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cbrsa.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(op string, format string, args ...any) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}

// SymbolRangeError reports the first plaintext symbol that is not below the
// modulus. It matches ErrSymbolOutOfRange under errors.Is.
type SymbolRangeError struct {
	Index   int      // position of the symbol, counted in runes
	Symbol  rune     // offending symbol
	Modulus *big.Int // modulus of the public key
}

func (e *SymbolRangeError) Error() string {
	return fmt.Sprintf("cbrsa: symbol %U at index %d is not below modulus %s", e.Symbol, e.Index, e.Modulus)
}

func (e *SymbolRangeError) Is(target error) bool {
	return target == ErrSymbolOutOfRange
}

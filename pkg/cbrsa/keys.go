package cbrsa

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/logging"
)

// PublicKey is the pair (e, n). It is immutable once constructed and safe to
// share between goroutines.
type PublicKey struct {
	e *big.Int
	n *big.Int
}

// NewPublicKey builds a public key from an exponent and a modulus. Both values
// are copied and must be positive.
func NewPublicKey(e, n *big.Int) (*PublicKey, error) {
	if err := checkComponents(e, n); err != nil {
		return nil, &Error{Op: "NewPublicKey", Err: err}
	}
	return &PublicKey{e: new(big.Int).Set(e), n: new(big.Int).Set(n)}, nil
}

// E returns a copy of the public exponent.
func (k *PublicKey) E() *big.Int {
	return new(big.Int).Set(k.e)
}

// N returns a copy of the modulus.
func (k *PublicKey) N() *big.Int {
	return new(big.Int).Set(k.n)
}

// Equal reports whether both keys hold the same exponent and modulus.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.e.Cmp(other.e) == 0 && k.n.Cmp(other.n) == 0
}

// String renders the key as "(e, n)" in decimal.
func (k *PublicKey) String() string {
	if k == nil {
		return "<nil>"
	}
	return fmt.Sprintf("(%s, %s)", k.e, k.n)
}

// PrivateKey is the pair (d, n). Apart from Zeroize it is immutable.
type PrivateKey struct {
	mu       sync.RWMutex
	d        *big.Int
	n        *big.Int
	zeroized bool
}

// NewPrivateKey builds a private key from an exponent and a modulus. Both
// values are copied and must be positive.
func NewPrivateKey(d, n *big.Int) (*PrivateKey, error) {
	if err := checkComponents(d, n); err != nil {
		return nil, &Error{Op: "NewPrivateKey", Err: err}
	}
	return &PrivateKey{d: new(big.Int).Set(d), n: new(big.Int).Set(n)}, nil
}

// D returns a copy of the private exponent. After Zeroize it returns zero.
func (k *PrivateKey) D() *big.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return new(big.Int).Set(k.d)
}

// N returns a copy of the modulus.
func (k *PrivateKey) N() *big.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return new(big.Int).Set(k.n)
}

// Zeroize wipes the private exponent. The key cannot decrypt afterwards.
func (k *PrivateKey) Zeroize() {
	k.mu.Lock()
	defer k.mu.Unlock()
	ZeroizeInt(k.d)
	k.zeroized = true
}

// Zeroized reports whether Zeroize has been called.
func (k *PrivateKey) Zeroized() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.zeroized
}

// String renders the key with the exponent redacted.
func (k *PrivateKey) String() string {
	if k == nil {
		return "<nil>"
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return fmt.Sprintf("(%s, %s)", logging.Placeholder(), k.n)
}

func checkComponents(exp, n *big.Int) error {
	switch {
	case exp == nil || n == nil:
		return fmt.Errorf("%w: nil component", ErrInvalidKey)
	case exp.Sign() <= 0:
		return fmt.Errorf("%w: exponent must be positive", ErrInvalidKey)
	case n.Sign() <= 0:
		return fmt.Errorf("%w: modulus must be positive", ErrInvalidKey)
	}
	return nil
}

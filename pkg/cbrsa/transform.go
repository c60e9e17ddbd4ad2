package cbrsa

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

// Encrypt maps every symbol of plaintext to m^e mod n, where m is the symbol's
// Unicode code point. The result has one integer per rune, in order.
//
// Encryption is deterministic and unpadded: equal symbols give equal integers.
// A symbol whose code point is not below n is reported as a *SymbolRangeError
// and nothing is returned.
func Encrypt(pub *PublicKey, plaintext string) ([]*big.Int, error) {
	if pub == nil {
		return nil, &Error{Op: "Encrypt", Err: ErrInvalidKey}
	}
	if !utf8.ValidString(plaintext) {
		return nil, errorf("Encrypt", "%w: plaintext is not valid UTF-8", ErrInvalidCodePoint)
	}

	out := make([]*big.Int, 0, utf8.RuneCountInString(plaintext))
	m := new(big.Int)
	for _, symbol := range plaintext {
		m.SetInt64(int64(symbol))
		if m.Cmp(pub.n) >= 0 {
			return nil, &Error{Op: "Encrypt", Err: &SymbolRangeError{
				Index:   len(out),
				Symbol:  symbol,
				Modulus: pub.N(),
			}}
		}
		out = append(out, new(big.Int).Exp(m, pub.e, pub.n))
	}
	return out, nil
}

// Decrypt maps every ciphertext integer c to c^d mod n and reads the result as
// a Unicode code point. Values outside [0, n) yield ErrCiphertextOutOfRange;
// results that are not Unicode scalar values yield ErrInvalidCodePoint.
func Decrypt(priv *PrivateKey, ciphertext []*big.Int) (string, error) {
	if priv == nil {
		return "", &Error{Op: "Decrypt", Err: ErrInvalidKey}
	}
	priv.mu.RLock()
	defer priv.mu.RUnlock()
	if priv.zeroized {
		return "", &Error{Op: "Decrypt", Err: ErrKeyZeroized}
	}

	var b strings.Builder
	b.Grow(len(ciphertext))
	m := new(big.Int)
	for i, c := range ciphertext {
		if err := checkCiphertext(c, priv.n); err != nil {
			return "", errorf("Decrypt", "symbol %d: %w", i, err)
		}
		m.Exp(c, priv.d, priv.n)
		symbol, err := codePoint(m)
		if err != nil {
			return "", errorf("Decrypt", "symbol %d: %w", i, err)
		}
		b.WriteRune(symbol)
	}
	return b.String(), nil
}

// EncryptInt returns m^e mod n for a single integer m in [0, n).
func EncryptInt(pub *PublicKey, m *big.Int) (*big.Int, error) {
	if pub == nil {
		return nil, &Error{Op: "EncryptInt", Err: ErrInvalidKey}
	}
	if m == nil || m.Sign() < 0 || m.Cmp(pub.n) >= 0 {
		return nil, errorf("EncryptInt", "%w: %v", ErrSymbolOutOfRange, m)
	}
	return new(big.Int).Exp(m, pub.e, pub.n), nil
}

// DecryptInt returns c^d mod n for a single integer c in [0, n).
func DecryptInt(priv *PrivateKey, c *big.Int) (*big.Int, error) {
	if priv == nil {
		return nil, &Error{Op: "DecryptInt", Err: ErrInvalidKey}
	}
	priv.mu.RLock()
	defer priv.mu.RUnlock()
	if priv.zeroized {
		return nil, &Error{Op: "DecryptInt", Err: ErrKeyZeroized}
	}
	if err := checkCiphertext(c, priv.n); err != nil {
		return nil, &Error{Op: "DecryptInt", Err: err}
	}
	return new(big.Int).Exp(c, priv.d, priv.n), nil
}

func checkCiphertext(c, n *big.Int) error {
	if c == nil {
		return fmt.Errorf("%w: nil value", ErrCiphertextOutOfRange)
	}
	if c.Sign() < 0 || c.Cmp(n) >= 0 {
		return fmt.Errorf("%w: %s", ErrCiphertextOutOfRange, c)
	}
	return nil
}

func codePoint(m *big.Int) (rune, error) {
	if !m.IsInt64() || m.Int64() > utf8.MaxRune {
		return 0, fmt.Errorf("%w: %s exceeds U+10FFFF", ErrInvalidCodePoint, m)
	}
	r := rune(m.Int64())
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: %U is a surrogate", ErrInvalidCodePoint, r)
	}
	return r, nil
}

// Package cbrsa implements textbook RSA from first principles: random prime
// generation, totient and public exponent selection, modular inverse
// derivation, and per-symbol encryption by modular exponentiation.
//
// The scheme is unpadded and deterministic. Each Unicode code point of the
// plaintext is encrypted independently, so equal symbols give equal ciphertext
// integers. It is meant for teaching and testing, not for protecting data.
//
// # Keys
//
//	pub, priv, err := cbrsa.GenerateKeys(cbrsa.DefaultBits)
//	if err != nil {
//	    return err
//	}
//	defer priv.Zeroize()
//
// A KeyGenerator exposes the entropy source, the primality round count, the
// retry bounds, a logger and an event observer:
//
//	gen := cbrsa.NewKeyGenerator(cbrsa.Config{
//	    Logger:   logging.NewZap(zapLogger),
//	    Observer: metrics.NewRecorder(prometheus.DefaultRegisterer),
//	})
//	pub, priv, err := gen.Generate(ctx, 1024)
//
// # Encryption
//
//	ct, err := cbrsa.Encrypt(pub, "Hello")
//	pt, err := cbrsa.Decrypt(priv, ct)
//
// Every code point must be below the modulus. Encrypt reports the first one that
// is not with a *SymbolRangeError.
//
// # Errors
//
// Operations return *Error values that wrap the package sentinels, so callers
// test with errors.Is:
//
//	if errors.Is(err, cbrsa.ErrSymbolOutOfRange) {
//	    // use a larger key
//	}
package cbrsa

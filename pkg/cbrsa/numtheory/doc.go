// Package numtheory provides the integer primitives behind RSA key generation:
// greatest common divisor, least common multiple and modular inverse.
//
// All functions operate on math/big values and never modify their arguments.
// None of them run in constant time.
//
//	phi := numtheory.LCM(pMinus1, qMinus1)
//	if numtheory.Coprime(e, phi) {
//	    d, err := numtheory.ModInverse(e, phi)
//	    ...
//	}
package numtheory

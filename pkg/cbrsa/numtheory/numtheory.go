package numtheory

import (
	"errors"
	"math/big"
)

var (
	// ErrNotInvertible is returned by ModInverse when gcd(a, m) != 1.
	ErrNotInvertible = errors.New("numtheory: value is not invertible modulo m")

	// ErrInvalidModulus is returned by ModInverse for a modulus that is nil or not positive.
	ErrInvalidModulus = errors.New("numtheory: modulus must be positive")
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// GCD returns the greatest common divisor of a and b using the iterative
// Euclidean algorithm. Signs are ignored, so GCD(a, 0) = |a| and GCD(0, 0) = 0.
// Neither argument is modified.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	r := new(big.Int)
	for y.Sign() != 0 {
		r.Rem(x, y)
		x, y, r = y, r, x
	}
	return x
}

// LCM returns |a*b| / gcd(a, b). LCM(0, 0) is defined as 0.
func LCM(a, b *big.Int) *big.Int {
	g := GCD(a, b)
	if g.Sign() == 0 {
		return new(big.Int)
	}
	l := new(big.Int).Mul(a, b)
	l.Abs(l)
	return l.Quo(l, g)
}

// ModInverse returns the unique x in [0, m) with a*x ≡ 1 (mod m), computed with
// the extended Euclidean algorithm. For m = 1 the result is 0.
//
// a is reduced modulo m first, so negative inputs are accepted. When gcd(a, m)
// is not 1 no inverse exists and ErrNotInvertible is returned.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if m.Cmp(bigOne) == 0 {
		return new(big.Int), nil
	}

	m0 := new(big.Int).Set(m)
	r0 := new(big.Int).Mod(a, m) // Euclidean modulus, always >= 0
	r1 := new(big.Int).Set(m)
	x0 := new(big.Int)
	x1 := big.NewInt(1)
	q := new(big.Int)
	t := new(big.Int)

	for r0.Cmp(bigOne) > 0 {
		if r1.Sign() == 0 {
			return nil, ErrNotInvertible
		}
		q.Quo(r0, r1)

		t.Rem(r0, r1)
		r0, r1, t = r1, t, r0

		t.Mul(q, x0)
		t.Sub(x1, t)
		x1, x0, t = x0, t, x1
	}
	if r0.Sign() == 0 {
		return nil, ErrNotInvertible
	}

	// |x1| < m0 holds throughout, so one correction is enough.
	if x1.Sign() < 0 {
		x1.Add(x1, m0)
	}
	return x1, nil
}

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x and y
// such that a*x + b*y = g. Both inputs must be non-negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)
	q := new(big.Int)
	tmp := new(big.Int)

	for r.Cmp(bigZero) != 0 {
		q.Quo(oldR, r)

		tmp.Mul(q, r)
		tmp.Sub(oldR, tmp)
		oldR, r, tmp = r, tmp, oldR

		tmp.Mul(q, s)
		tmp.Sub(oldS, tmp)
		oldS, s, tmp = s, tmp, oldS

		tmp.Mul(q, t)
		tmp.Sub(oldT, tmp)
		oldT, t, tmp = t, tmp, oldT
	}
	return oldR, oldS, oldT
}

// Coprime reports whether gcd(a, b) = 1.
func Coprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(bigOne) == 0
}

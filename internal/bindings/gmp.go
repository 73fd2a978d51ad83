//go:build cgo && gmp

package bindings

import (
	"math/big"

	"github.com/ncw/gmp"
)

// Available reports whether libgmp is linked in.
func Available() bool { return true }

// Version names the linked library.
func Version() string { return "libgmp via github.com/ncw/gmp" }

// ProbablyPrime runs reps rounds of GMP's probabilistic primality test.
func ProbablyPrime(x *big.Int, reps int) (bool, error) {
	return toGMP(x).ProbablyPrime(reps), nil
}

// GCD returns gcd(a, b) for non-negative a and b.
func GCD(a, b *big.Int) (*big.Int, error) {
	if a.Sign() == 0 {
		return new(big.Int).Set(b), nil
	}
	if b.Sign() == 0 {
		return new(big.Int).Set(a), nil
	}
	return fromGMP(new(gmp.Int).GCD(nil, nil, toGMP(a), toGMP(b))), nil
}

// ModInverse returns a^-1 mod m. ok is false when gcd(a, m) != 1, in which
// case mpz_invert has no answer and is never called.
func ModInverse(a, m *big.Int) (inv *big.Int, ok bool, err error) {
	ga, gm := toGMP(a), toGMP(m)
	if new(gmp.Int).GCD(nil, nil, ga, gm).Cmp(gmp.NewInt(1)) != 0 {
		return nil, false, nil
	}
	return fromGMP(new(gmp.Int).ModInverse(ga, gm)), true, nil
}

// Exp returns base^exp mod mod through mpz_powm.
func Exp(base, exp, mod *big.Int) (*big.Int, error) {
	return fromGMP(new(gmp.Int).Exp(toGMP(base), toGMP(exp), toGMP(mod))), nil
}

// NextPrime returns the smallest probable prime >= x.
func NextPrime(x *big.Int, reps int) (*big.Int, error) {
	if x.Cmp(big.NewInt(2)) <= 0 {
		return big.NewInt(2), nil
	}
	start := new(big.Int).Set(x)
	if start.Bit(0) == 0 {
		start.Add(start, big.NewInt(1))
	}

	two := gmp.NewInt(2)
	c := toGMP(start)
	for !c.ProbablyPrime(reps) {
		c.Add(c, two)
	}
	return fromGMP(c), nil
}

func toGMP(x *big.Int) *gmp.Int {
	z := new(gmp.Int)
	if x.Sign() == 0 {
		return z
	}
	return z.SetBytes(x.Bytes())
}

func fromGMP(z *gmp.Int) *big.Int {
	if z.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(z.Bytes())
}

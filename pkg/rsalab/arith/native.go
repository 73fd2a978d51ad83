package arith

import (
	"math/big"
	"math/rand"
)

// NativeBigInt implements Backend on math/big alone.
type NativeBigInt struct{}

var _ Backend = NativeBigInt{}

// ID implements Backend.
func (NativeBigInt) ID() ID { return Native }

// IsProbablePrime implements Backend. math/big runs the requested
// Miller-Rabin rounds followed by a Baillie-PSW test.
func (NativeBigInt) IsProbablePrime(x *big.Int, certainty int) bool {
	if belowTwo(x) {
		return false
	}
	return x.ProbablyPrime(rounds(certainty))
}

// GCD implements Backend.
func (NativeBigInt) GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, abs(a), abs(b))
}

// ModInverse implements Backend.
func (n NativeBigInt) ModInverse(a, modulus *big.Int) (*big.Int, error) {
	reduced, done, err := reduceForInverse(a, modulus)
	if err != nil || done != nil {
		return done, err
	}
	inv := new(big.Int).ModInverse(reduced, modulus)
	if inv == nil {
		return nil, notInvertible(a, modulus)
	}
	return inv, nil
}

// ModPow implements Backend.
func (NativeBigInt) ModPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	b, err := reduceForPow(base, exponent, modulus)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Exp(b, exponent, modulus), nil
}

// RandomBelow implements Backend.
func (NativeBigInt) RandomBelow(rnd *rand.Rand, bound *big.Int) (*big.Int, error) {
	return randomBelow(rnd, bound)
}

// GeneratePrime implements Backend by direct sampling: draw a bits-bit odd
// value with the top bit set and redraw until it is a probable prime. The
// result always has exactly bits bits.
func (n NativeBigInt) GeneratePrime(rnd *rand.Rand, bits, certainty int) (*big.Int, error) {
	for {
		x, err := randomTopBit(rnd, bits)
		if err != nil {
			return nil, err
		}
		x.SetBit(x, 0, 1)
		if n.IsProbablePrime(x, certainty) {
			return x, nil
		}
	}
}

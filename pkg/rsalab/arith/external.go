package arith

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/pcacs/rsalab-go/internal/bindings"
	"github.com/pcacs/rsalab-go/pkg/rsalab"
)

// externalMultiprecision implements Backend on libgmp. It can only be
// obtained from NewExternalMultiprecision, which refuses to build it unless
// the bindings are linked, so the calls below never see ErrNotBuilt.
type externalMultiprecision struct{}

// NewExternalMultiprecision returns the libgmp adapter, or an error matching
// rsalab.ErrNotBuilt when the binary was built without it.
func NewExternalMultiprecision() (Backend, error) {
	if !bindings.Available() {
		return nil, fmt.Errorf("arith: %s backend: %w", External, rsalab.ErrNotBuilt)
	}
	return externalMultiprecision{}, nil
}

func (externalMultiprecision) ID() ID { return External }

func (externalMultiprecision) IsProbablePrime(x *big.Int, certainty int) bool {
	if belowTwo(x) {
		return false
	}
	ok, err := bindings.ProbablyPrime(x, rounds(certainty))
	if err != nil {
		panic(fmt.Sprintf("arith: gmp backend without libgmp: %v", err))
	}
	return ok
}

func (externalMultiprecision) GCD(a, b *big.Int) *big.Int {
	g, err := bindings.GCD(abs(a), abs(b))
	if err != nil {
		panic(fmt.Sprintf("arith: gmp backend without libgmp: %v", err))
	}
	return g
}

func (externalMultiprecision) ModInverse(a, modulus *big.Int) (*big.Int, error) {
	reduced, done, err := reduceForInverse(a, modulus)
	if err != nil || done != nil {
		return done, err
	}
	inv, ok, err := bindings.ModInverse(reduced, modulus)
	if err != nil {
		return nil, rsalab.RemapError(err)
	}
	if !ok {
		return nil, notInvertible(a, modulus)
	}
	return inv, nil
}

func (externalMultiprecision) ModPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	b, err := reduceForPow(base, exponent, modulus)
	if err != nil {
		return nil, err
	}
	r, err := bindings.Exp(b, exponent, modulus)
	if err != nil {
		return nil, rsalab.RemapError(err)
	}
	return r, nil
}

func (externalMultiprecision) RandomBelow(rnd *rand.Rand, bound *big.Int) (*big.Int, error) {
	return randomBelow(rnd, bound)
}

// GeneratePrime draws a random bits-bit lower bound and returns the next
// probable prime at or above it. The top bit of the bound is forced so the
// product of two such primes keeps the requested size; on rare occasions the
// prime found crosses into bits+1 bits.
func (externalMultiprecision) GeneratePrime(rnd *rand.Rand, bits, certainty int) (*big.Int, error) {
	lower, err := randomTopBit(rnd, bits)
	if err != nil {
		return nil, err
	}
	p, err := bindings.NextPrime(lower, rounds(certainty))
	if err != nil {
		return nil, rsalab.RemapError(err)
	}
	return p, nil
}

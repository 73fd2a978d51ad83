package arith

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/pcacs/rsalab-go/internal/bindings"
	"github.com/pcacs/rsalab-go/pkg/rsalab"
)

// ID names an arithmetic adapter.
type ID string

const (
	Native   ID = "native"
	External ID = "gmp"
)

func (id ID) String() string { return string(id) }

// Backend is the arithmetic capability set shared by every adapter. Integers
// cross the interface as *big.Int; inputs are never modified.
type Backend interface {
	// ID identifies the adapter.
	ID() ID

	// IsProbablePrime reports whether x passes a Miller-Rabin class test
	// whose false-positive probability is at most 2^-certainty.
	IsProbablePrime(x *big.Int, certainty int) bool

	// GCD returns gcd(|a|, |b|).
	GCD(a, b *big.Int) *big.Int

	// ModInverse returns a^-1 mod modulus in [0, modulus). It fails with
	// rsalab.ErrNotInvertible when gcd(a, modulus) != 1.
	ModInverse(a, modulus *big.Int) (*big.Int, error)

	// ModPow returns base^exponent mod modulus. It is not constant time.
	ModPow(base, exponent, modulus *big.Int) (*big.Int, error)

	// RandomBelow returns a uniformly distributed value in [0, bound).
	RandomBelow(rnd *rand.Rand, bound *big.Int) (*big.Int, error)

	// GeneratePrime returns a probable prime of about bits bits.
	GeneratePrime(rnd *rand.Rand, bits, certainty int) (*big.Int, error)
}

// New returns the adapter registered under id.
func New(id ID) (Backend, error) {
	switch id {
	case Native:
		return NativeBigInt{}, nil
	case External:
		return NewExternalMultiprecision()
	default:
		return nil, fmt.Errorf("arith: %q: %w", id, rsalab.ErrUnknownBackend)
	}
}

// ParseID maps a configuration string to an ID.
func ParseID(s string) (ID, error) {
	switch id := ID(s); id {
	case Native, External:
		return id, nil
	default:
		return "", fmt.Errorf("arith: %q: %w", s, rsalab.ErrUnknownBackend)
	}
}

// Available lists the adapters this binary can construct.
func Available() []ID {
	ids := []ID{Native}
	if bindings.Available() {
		ids = append(ids, External)
	}
	return ids
}

var one = big.NewInt(1)

// rounds converts a certainty exponent into Miller-Rabin rounds. One round
// lets a composite through with probability at most 1/4, so ceil(c/2) rounds
// reach 2^-c.
func rounds(certainty int) int {
	r := (certainty + 1) / 2
	if r < 1 {
		r = 1
	}
	return r
}

func belowTwo(x *big.Int) bool {
	return x == nil || x.Cmp(big.NewInt(2)) < 0
}

func abs(x *big.Int) *big.Int {
	return new(big.Int).Abs(x)
}

// reduceForPow validates ModPow operands and returns base reduced into
// [0, modulus) so adapters only ever see non-negative values.
func reduceForPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("arith: mod_pow modulus must be positive: %w", rsalab.ErrInvalidOperand)
	}
	if base == nil || exponent == nil || exponent.Sign() < 0 {
		return nil, fmt.Errorf("arith: mod_pow exponent must be non-negative: %w", rsalab.ErrInvalidOperand)
	}
	return new(big.Int).Mod(base, modulus), nil
}

// reduceForInverse validates ModInverse operands. When done is non-nil the
// answer is already known and the adapter must not be consulted.
func reduceForInverse(a, modulus *big.Int) (reduced, done *big.Int, err error) {
	if modulus == nil || modulus.Sign() <= 0 || a == nil {
		return nil, nil, fmt.Errorf("arith: mod_inverse modulus must be positive: %w", rsalab.ErrInvalidOperand)
	}
	if modulus.Cmp(one) == 0 {
		return nil, new(big.Int), nil
	}
	return new(big.Int).Mod(a, modulus), nil, nil
}

func notInvertible(a, modulus *big.Int) error {
	return fmt.Errorf("arith: %s mod %s: %w", a, modulus, rsalab.ErrNotInvertible)
}

// randomBelow is shared by every adapter so a seed yields the same stream of
// values regardless of backend.
func randomBelow(rnd *rand.Rand, bound *big.Int) (*big.Int, error) {
	if rnd == nil {
		return nil, fmt.Errorf("arith: random source is nil: %w", rsalab.ErrInvalidOperand)
	}
	if bound == nil || bound.Sign() <= 0 {
		return nil, fmt.Errorf("arith: random bound must be positive: %w", rsalab.ErrInvalidOperand)
	}
	return new(big.Int).Rand(rnd, bound), nil
}

// randomTopBit returns a uniformly random bits-bit value with its top bit
// set.
func randomTopBit(rnd *rand.Rand, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("arith: prime of %d bits: %w", bits, rsalab.ErrInvalidBitLength)
	}
	x, err := randomBelow(rnd, new(big.Int).Lsh(one, uint(bits)))
	if err != nil {
		return nil, err
	}
	return x.SetBit(x, bits-1, 1), nil
}

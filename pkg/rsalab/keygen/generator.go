package keygen

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
	"github.com/pcacs/rsalab-go/pkg/rsalab/euclid"
	"github.com/pcacs/rsalab-go/pkg/rsalab/logging"
)

// InverseMethod selects how the private exponent is derived.
type InverseMethod string

const (
	// InverseBackend asks the arithmetic backend for e^-1 mod phi.
	InverseBackend InverseMethod = "backend"
	// InverseEuclid uses the backend-independent extended Euclidean algorithm.
	InverseEuclid InverseMethod = "euclid"
)

// MinBits is the smallest modulus FromBits accepts. Smaller requests give
// 2-bit halves, and 3 is the only 2-bit prime.
const MinBits = 5

// maxPrimeRedraws bounds how often FromBits redraws q while it equals p.
const maxPrimeRedraws = 64

// Params configures a Generator. The zero value of every field selects its
// default.
type Params struct {
	// Certainty is the primality exponent: a composite passes with
	// probability at most 2^-Certainty. Defaults to rsalab.DefaultCertainty.
	Certainty int

	// Rand is the randomness source for exponent search and prime draws.
	// When nil, a source seeded from the clock is used.
	Rand *rand.Rand

	// MaxExponentAttempts bounds the public exponent search. Defaults to
	// rsalab.DefaultMaxExponentAttempts.
	MaxExponentAttempts int

	// InverseMethod defaults to InverseBackend.
	InverseMethod InverseMethod

	// Logger receives progress records. Defaults to logging.Discard().
	Logger logging.Logger
}

// Generator builds key pairs over one backend. It owns its random source and
// is not safe for concurrent use.
type Generator struct {
	backend     arith.Backend
	certainty   int
	rnd         *rand.Rand
	maxAttempts int
	inverse     InverseMethod
	inverter    *euclid.Inverter
	logger      logging.Logger
}

// NewGenerator validates params and returns a Generator. A nil params uses
// every default.
func NewGenerator(backend arith.Backend, params *Params) (*Generator, error) {
	if backend == nil {
		return nil, errors.New("keygen: backend is required")
	}
	if params == nil {
		params = &Params{}
	}

	g := &Generator{
		backend:     backend,
		certainty:   params.Certainty,
		rnd:         params.Rand,
		maxAttempts: params.MaxExponentAttempts,
		inverse:     params.InverseMethod,
		logger:      params.Logger,
	}
	switch {
	case g.certainty < 0:
		return nil, fmt.Errorf("keygen: certainty %d must not be negative", g.certainty)
	case g.certainty == 0:
		g.certainty = rsalab.DefaultCertainty
	}
	switch {
	case g.maxAttempts < 0:
		return nil, fmt.Errorf("keygen: max exponent attempts %d must not be negative", g.maxAttempts)
	case g.maxAttempts == 0:
		g.maxAttempts = rsalab.DefaultMaxExponentAttempts
	}
	switch g.inverse {
	case "":
		g.inverse = InverseBackend
	case InverseBackend, InverseEuclid:
	default:
		return nil, fmt.Errorf("keygen: unknown inverse method %q", g.inverse)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	g.logger = g.logger.With("component", "keygen", "backend", backend.ID().String())
	g.inverter = euclid.NewInverter(g.logger)
	return g, nil
}

// Backend returns the arithmetic backend the generator runs on.
func (g *Generator) Backend() arith.Backend { return g.backend }

// FromPrimes builds a key pair from two distinct primes and a randomly
// searched public exponent.
func (g *Generator) FromPrimes(ctx context.Context, p, q *big.Int) (*KeyPair, error) {
	if err := g.checkPrimes(p, q); err != nil {
		return nil, err
	}
	_, phi := modulusAndTotient(p, q)

	e, attempts, err := g.searchExponent(ctx, phi)
	if err != nil {
		return nil, err
	}
	d, err := g.privateExponent(ctx, e, phi)
	if err != nil {
		return nil, err
	}
	kp := newKeyPair(p, q, e, d)
	g.logger.Debug(ctx, "key pair built",
		"bits", kp.BitLen(),
		"attempts", attempts,
		"e", e.String(),
		logging.Redacted("d"),
	)
	return kp, nil
}

// FromPrimesAndExponent builds a key pair from two distinct primes and a
// caller-chosen public exponent, which must satisfy 1 < e < phi and
// gcd(e, phi) = 1.
func (g *Generator) FromPrimesAndExponent(ctx context.Context, p, q, e *big.Int) (*KeyPair, error) {
	if err := g.checkPrimes(p, q); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("keygen: public exponent is nil: %w", rsalab.ErrInvalidOperand)
	}
	_, phi := modulusAndTotient(p, q)

	if !g.acceptableExponent(e, phi) {
		return nil, fmt.Errorf("keygen: e=%s phi=%s: %w", e, phi, rsalab.ErrInvalidPublicExponent)
	}
	d, err := g.privateExponent(ctx, e, phi)
	if err != nil {
		return nil, err
	}
	return newKeyPair(p, q, e, d), nil
}

// FromBits draws two primes of ceil(bits/2) bits each from the backend and
// continues as FromPrimes.
func (g *Generator) FromBits(ctx context.Context, bits int) (*KeyPair, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("keygen: %d bits, need at least %d: %w", bits, MinBits, rsalab.ErrInvalidBitLength)
	}
	half := (bits + 1) / 2

	start := time.Now()
	p, err := g.prime(ctx, half)
	if err != nil {
		return nil, err
	}
	var q *big.Int
	for i := 0; ; i++ {
		if i == maxPrimeRedraws {
			return nil, fmt.Errorf("keygen: %d-bit prime repeated %d times: %w", half, i, rsalab.ErrEqualPrimes)
		}
		if q, err = g.prime(ctx, half); err != nil {
			return nil, err
		}
		if q.Cmp(p) != 0 {
			break
		}
	}
	g.logger.Debug(ctx, "primes drawn", "bits", half, "elapsed", time.Since(start))

	return g.FromPrimes(ctx, p, q)
}

func (g *Generator) prime(ctx context.Context, bits int) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := g.backend.GeneratePrime(g.rnd, bits, g.certainty)
	if err != nil {
		return nil, fmt.Errorf("keygen: generate %d-bit prime: %w", bits, err)
	}
	return p, nil
}

func (g *Generator) checkPrimes(p, q *big.Int) error {
	if p == nil || q == nil {
		return fmt.Errorf("keygen: primes must not be nil: %w", rsalab.ErrInvalidOperand)
	}
	for _, x := range []*big.Int{p, q} {
		if !g.backend.IsProbablePrime(x, g.certainty) {
			return fmt.Errorf("keygen: %s at certainty %d: %w", x, g.certainty, rsalab.ErrPrimalityFailure)
		}
	}
	if p.Cmp(q) == 0 {
		return fmt.Errorf("keygen: p = q = %s: %w", p, rsalab.ErrEqualPrimes)
	}
	return nil
}

func (g *Generator) acceptableExponent(e, phi *big.Int) bool {
	if e.Cmp(big.NewInt(1)) <= 0 || e.Cmp(phi) >= 0 {
		return false
	}
	return g.backend.GCD(phi, e).Cmp(big.NewInt(1)) == 0
}

// searchExponent draws e uniformly from [0, 2^(bitlen(phi)-1)) until one is
// acceptable. Values coprime to phi have density totient(phi)/phi, which
// decays only like 1/log log phi, so the expected number of draws stays small
// and the attempt bound is reached only for degenerate phi, such as phi = 2
// where the range holds nothing above 1.
func (g *Generator) searchExponent(ctx context.Context, phi *big.Int) (*big.Int, int, error) {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(phi.BitLen()-1))
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, attempt, err
		}
		e, err := g.backend.RandomBelow(g.rnd, bound)
		if err != nil {
			return nil, attempt, fmt.Errorf("keygen: draw exponent: %w", err)
		}
		if g.acceptableExponent(e, phi) {
			return e, attempt, nil
		}
	}
	g.logger.Warn(ctx, "public exponent search exhausted", "phi_bits", phi.BitLen(), "attempts", g.maxAttempts)
	return nil, g.maxAttempts, fmt.Errorf("keygen: phi=%s after %d attempts: %w", phi, g.maxAttempts, rsalab.ErrExponentSearchExhausted)
}

func (g *Generator) privateExponent(ctx context.Context, e, phi *big.Int) (*big.Int, error) {
	var (
		d   *big.Int
		err error
	)
	switch g.inverse {
	case InverseEuclid:
		d, err = g.inverter.Inverse(ctx, e, phi)
	default:
		d, err = g.backend.ModInverse(e, phi)
	}
	if err != nil {
		return nil, fmt.Errorf("keygen: private exponent: %w", err)
	}
	return d, nil
}

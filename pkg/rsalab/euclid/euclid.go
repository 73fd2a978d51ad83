// Package euclid computes modular inverses with the extended Euclidean
// algorithm, independently of any arithmetic backend. It exists as a
// cross-check for Backend.ModInverse and as an alternative way to derive a
// private exponent.
package euclid

import (
	"context"
	"fmt"
	"math/big"
	"slices"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/logging"
)

// Inverse returns k^-1 mod n in [0, n).
//
// The quotients of the Euclidean division chain on (n, k) are collected,
// the final one dropped, and the rest read back in reverse to build the
// continuant A[0]=0, A[1]=1, A[i]=A[i-1]*q+A[i-2]. The last continuant is the
// inverse up to sign.
//
// k must lie in [0, n); otherwise the error wraps rsalab.ErrOutOfRange. When
// gcd(k, n) != 1 the error wraps rsalab.ErrNotInvertible.
func Inverse(k, n *big.Int) (*big.Int, error) {
	if k == nil || n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("euclid: modulus must be positive: %w", rsalab.ErrInvalidOperand)
	}
	if k.Sign() < 0 || k.Cmp(n) >= 0 {
		return nil, fmt.Errorf("euclid: %s not in [0, %s): %w", k, n, rsalab.ErrOutOfRange)
	}
	if n.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int), nil
	}

	quotients, gcd := quotientChain(n, k)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("euclid: gcd(%s, %s) = %s: %w", k, n, gcd, rsalab.ErrNotInvertible)
	}

	// The last quotient produces the zero remainder and plays no part.
	quotients = quotients[:len(quotients)-1]
	slices.Reverse(quotients)

	prev, cur := new(big.Int), big.NewInt(1)
	for _, q := range quotients {
		next := new(big.Int).Mul(cur, q)
		next.Add(next, prev)
		prev, cur = cur, next
	}
	cur.Mod(cur, n)

	check := new(big.Int).Mul(k, cur)
	if check.Mod(check, n).Cmp(big.NewInt(1)) != 0 {
		cur.Sub(n, cur)
	}
	return cur, nil
}

// quotientChain runs Euclid's algorithm on (a, b) and returns every quotient
// together with the final non-zero remainder.
func quotientChain(a, b *big.Int) ([]*big.Int, *big.Int) {
	a, b = new(big.Int).Set(a), new(big.Int).Set(b)
	var quotients []*big.Int
	for b.Sign() != 0 {
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		quotients = append(quotients, q)
		a, b = b, r
	}
	return quotients, a
}

// Inverter is Inverse with failure logging.
type Inverter struct {
	logger logging.Logger
}

// NewInverter returns an Inverter reporting through logger. A nil logger
// discards records.
func NewInverter(logger logging.Logger) *Inverter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Inverter{logger: logger.With("component", "euclid")}
}

// Inverse computes k^-1 mod n and logs the reason when no inverse exists.
// Operands are logged by size only since n is usually a totient.
func (iv *Inverter) Inverse(ctx context.Context, k, n *big.Int) (*big.Int, error) {
	inv, err := Inverse(k, n)
	if err != nil {
		iv.logger.Warn(ctx, "modular inverse failed", "k_bits", bitLen(k), "n_bits", bitLen(n), "error", err)
		return nil, err
	}
	return inv, nil
}

func bitLen(x *big.Int) int {
	if x == nil {
		return 0
	}
	return x.BitLen()
}

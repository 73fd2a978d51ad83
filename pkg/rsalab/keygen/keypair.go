package keygen

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
)

// KeyPair is an immutable RSA key: n = p*q, phi = (p-1)(q-1), e*d = 1 mod phi.
// Accessors hand out copies, so callers cannot alter a key after it was
// checked.
type KeyPair struct {
	p, q, n, phi, e, d *big.Int
}

func newKeyPair(p, q, e, d *big.Int) *KeyPair {
	n, phi := modulusAndTotient(p, q)
	return &KeyPair{
		p:   new(big.Int).Set(p),
		q:   new(big.Int).Set(q),
		n:   n,
		phi: phi,
		e:   new(big.Int).Set(e),
		d:   new(big.Int).Set(d),
	}
}

func modulusAndTotient(p, q *big.Int) (n, phi *big.Int) {
	n = new(big.Int).Mul(p, q)
	pm1 := new(big.Int).Sub(p, big.NewInt(1))
	qm1 := new(big.Int).Sub(q, big.NewInt(1))
	return n, pm1.Mul(pm1, qm1)
}

// P returns the first prime.
func (kp *KeyPair) P() *big.Int { return new(big.Int).Set(kp.p) }

// Q returns the second prime.
func (kp *KeyPair) Q() *big.Int { return new(big.Int).Set(kp.q) }

// N returns the public modulus.
func (kp *KeyPair) N() *big.Int { return new(big.Int).Set(kp.n) }

// Phi returns Euler's totient of N.
func (kp *KeyPair) Phi() *big.Int { return new(big.Int).Set(kp.phi) }

// E returns the public exponent.
func (kp *KeyPair) E() *big.Int { return new(big.Int).Set(kp.e) }

// D returns the private exponent.
func (kp *KeyPair) D() *big.Int { return new(big.Int).Set(kp.d) }

// BitLen returns the bit length of N.
func (kp *KeyPair) BitLen() int { return kp.n.BitLen() }

// Equal reports whether both key pairs hold the same six values.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	if kp == nil || other == nil {
		return kp == other
	}
	return kp.p.Cmp(other.p) == 0 &&
		kp.q.Cmp(other.q) == 0 &&
		kp.n.Cmp(other.n) == 0 &&
		kp.phi.Cmp(other.phi) == 0 &&
		kp.e.Cmp(other.e) == 0 &&
		kp.d.Cmp(other.d) == 0
}

// String prints the public half only.
func (kp *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{n=%s, e=%s}", kp.n, kp.e)
}

// ParseInt decodes a base-10 integer, as accepted on the command line.
func ParseInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("keygen: %q is not a decimal integer: %w", s, rsalab.ErrInvalidOperand)
	}
	return v, nil
}

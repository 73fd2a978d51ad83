// Package engine performs unpadded RSA encryption and decryption with a
// KeyPair over an arith.Backend.
//
// Messages are plain integers in [0, n). Inputs outside that range are not
// rejected: they are reduced modulo n by the exponentiation and therefore do
// not survive a round trip.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
	"github.com/pcacs/rsalab-go/pkg/rsalab/keygen"
)

// Engine binds a key pair to a backend. It holds no mutable state and may be
// shared between goroutines.
type Engine struct {
	kp      *keygen.KeyPair
	backend arith.Backend
	n, e, d *big.Int
}

// New returns an Engine for kp on backend.
func New(kp *keygen.KeyPair, backend arith.Backend) (*Engine, error) {
	if kp == nil {
		return nil, errors.New("engine: key pair is required")
	}
	if backend == nil {
		return nil, errors.New("engine: backend is required")
	}
	return &Engine{kp: kp, backend: backend, n: kp.N(), e: kp.E(), d: kp.D()}, nil
}

// Encrypt returns m^e mod n.
func (en *Engine) Encrypt(m *big.Int) (*big.Int, error) {
	if m == nil {
		return nil, fmt.Errorf("engine: message is nil: %w", rsalab.ErrInvalidOperand)
	}
	return en.backend.ModPow(m, en.e, en.n)
}

// Decrypt returns c^d mod n.
func (en *Engine) Decrypt(c *big.Int) (*big.Int, error) {
	if c == nil {
		return nil, fmt.Errorf("engine: ciphertext is nil: %w", rsalab.ErrInvalidOperand)
	}
	return en.backend.ModPow(c, en.d, en.n)
}

// EncryptString encrypts a decimal message and returns the decimal
// ciphertext.
func (en *Engine) EncryptString(m string) (string, error) {
	v, err := keygen.ParseInt(m)
	if err != nil {
		return "", err
	}
	c, err := en.Encrypt(v)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// DecryptString decrypts a decimal ciphertext and returns the decimal
// message.
func (en *Engine) DecryptString(c string) (string, error) {
	v, err := keygen.ParseInt(c)
	if err != nil {
		return "", err
	}
	m, err := en.Decrypt(v)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// EncryptUint64 encrypts a machine-word message. The ciphertext is returned
// as a big integer because it may not fit in 64 bits.
func (en *Engine) EncryptUint64(m uint64) (*big.Int, error) {
	return en.Encrypt(new(big.Int).SetUint64(m))
}

// DecryptUint64 decrypts c and returns the message as a uint64. It fails
// with rsalab.ErrOutOfRange when the plaintext does not fit.
func (en *Engine) DecryptUint64(c *big.Int) (uint64, error) {
	m, err := en.Decrypt(c)
	if err != nil {
		return 0, err
	}
	if !m.IsUint64() {
		return 0, fmt.Errorf("engine: plaintext %s exceeds 64 bits: %w", m, rsalab.ErrOutOfRange)
	}
	return m.Uint64(), nil
}

// PublicModulus returns n.
func (en *Engine) PublicModulus() *big.Int { return new(big.Int).Set(en.n) }

// PublicExponent returns e.
func (en *Engine) PublicExponent() *big.Int { return new(big.Int).Set(en.e) }

// PrivateExponent returns d. It exists for inspection and tests.
func (en *Engine) PrivateExponent() *big.Int { return new(big.Int).Set(en.d) }

// KeyPair returns the key the engine was built with.
func (en *Engine) KeyPair() *keygen.KeyPair { return en.kp }

// Backend returns the arithmetic backend in use.
func (en *Engine) Backend() arith.Backend { return en.backend }

// WriteStatus prints every key component, private ones included.
func (en *Engine) WriteStatus(w io.Writer) error {
	rows := []struct {
		label string
		value *big.Int
	}{
		{"  p = ", en.kp.P()},
		{"  q = ", en.kp.Q()},
		{"  n = ", en.n},
		{"phi = ", en.kp.Phi()},
		{"  e = ", en.e},
		{"  d = ", en.d},
	}
	if _, err := io.WriteString(w, "========== RSA Object Status =========\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := io.WriteString(w, r.label+r.value.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

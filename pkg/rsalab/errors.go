package rsalab

import (
	"errors"
	"fmt"
)

var (
	// ErrPrimalityFailure reports that one or both candidate primes failed the
	// probabilistic primality test at the configured certainty.
	ErrPrimalityFailure = errors.New("rsalab: primality test failed")

	// ErrInvalidPublicExponent reports a supplied public exponent that is not
	// coprime to phi or lies outside (1, phi).
	ErrInvalidPublicExponent = errors.New("rsalab: public exponent not relatively prime to phi")

	// ErrNotInvertible is returned when gcd(a, modulus) != 1.
	ErrNotInvertible = errors.New("rsalab: value not invertible")

	// ErrDecryptionMismatch signals that decrypt(encrypt(m)) != m. It never
	// happens with a correct backend and key; seeing it means a defect.
	ErrDecryptionMismatch = errors.New("rsalab: decryption mismatch")

	// ErrBackendDivergence signals that two arithmetic backends produced
	// different outputs for identical inputs.
	ErrBackendDivergence = errors.New("rsalab: backend outputs diverge")

	// ErrEqualPrimes rejects p == q.
	ErrEqualPrimes = errors.New("rsalab: primes must be distinct")

	// ErrExponentSearchExhausted is returned when the random public exponent
	// search hits its attempt limit without finding a valid candidate.
	ErrExponentSearchExhausted = errors.New("rsalab: public exponent search exhausted")

	// ErrInvalidBitLength rejects bit lengths too small to hold a prime.
	ErrInvalidBitLength = errors.New("rsalab: invalid bit length")

	// ErrInvalidOperand rejects arithmetic inputs outside an operation's domain,
	// such as a non-positive modulus or a negative exponent.
	ErrInvalidOperand = errors.New("rsalab: invalid operand")

	// ErrOutOfRange is returned by the Euclidean inverse when k >= N.
	ErrOutOfRange = errors.New("rsalab: value out of range")

	// ErrNotBuilt reports that the libgmp bindings were not linked into the
	// current binary. Build with cgo enabled and -tags gmp to include them.
	ErrNotBuilt = errors.New("rsalab: gmp bindings not built")

	// ErrUnknownBackend rejects a backend identifier that has no adapter.
	ErrUnknownBackend = errors.New("rsalab: unknown arithmetic backend")
)

// MismatchError pinpoints the round trip that failed during a benchmark run.
type MismatchError struct {
	Backend   string
	BitLength int
	KeyPair   int
	Message   int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: backend=%s bits=%d keypair=%d message=%d",
		ErrDecryptionMismatch, e.Backend, e.BitLength, e.KeyPair, e.Message)
}

// Unwrap lets errors.Is match ErrDecryptionMismatch.
func (e *MismatchError) Unwrap() error { return ErrDecryptionMismatch }

// DivergenceError names the operation on which two backends disagreed.
type DivergenceError struct {
	Operation string
	Reference string
	Candidate string
	BitLength int
	KeyPair   int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v: op=%s reference=%s candidate=%s bits=%d keypair=%d",
		ErrBackendDivergence, e.Operation, e.Reference, e.Candidate, e.BitLength, e.KeyPair)
}

// Unwrap lets errors.Is match ErrBackendDivergence.
func (e *DivergenceError) Unwrap() error { return ErrBackendDivergence }

// Package rsalab is an educational, unpadded RSA engine that runs the same key
// generation and encryption logic over interchangeable big-integer backends.
//
// It is NOT a secure RSA implementation: there is no OAEP or PKCS#1 padding,
// no constant-time arithmetic and no side-channel hardening. It exists to
// study key generation and to compare the speed and correctness of Go's
// math/big against libgmp.
//
// # Packages
//
//   - arith: the Backend interface and its Native (math/big) and External
//     (libgmp) adapters
//   - keygen: key pair construction from primes, primes plus exponent, or a
//     target bit length
//   - engine: encrypt/decrypt over a key pair
//   - euclid: an auditable extended-Euclid modular inverse
//   - bench: the cross-backend correctness and timing harness
//   - logging: the slog-backed logging facade
//
// This package holds what they share: the error vocabulary, Config and
// version information.
//
// # Errors
//
// Failures are reported as wrapped sentinel errors (ErrPrimalityFailure,
// ErrInvalidPublicExponent, ErrNotInvertible, ...) and match with errors.Is.
// Benchmark failures carry their coordinates in *MismatchError and
// *DivergenceError. Library code never exits the process.
//
// # Building with libgmp
//
// The External backend needs cgo and libgmp headers:
//
//	go build -tags gmp ./...
//
// Without the tag arith.New(arith.External) returns an error matching
// ErrNotBuilt and everything else keeps working on math/big.
package rsalab

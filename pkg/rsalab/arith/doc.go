// Package arith defines the arithmetic capability set RSA key generation and
// encryption run on, and its two interchangeable adapters.
//
// # Backends
//
//   - NativeBigInt: self-contained arbitrary precision on Go's math/big.
//   - the external multiprecision adapter from NewExternalMultiprecision:
//     the same contract delegated to libgmp. It is only linked when building
//     with cgo and -tags gmp; New(External) otherwise returns an error
//     matching rsalab.ErrNotBuilt.
//
// Both adapters are stateless values and safe for concurrent use. Randomness
// is always supplied by the caller as a *math/rand.Rand, and both adapters
// consume it identically, so equal seeds give equal random values on either
// backend. Prime generation differs on purpose: NativeBigInt samples
// probable primes directly while the libgmp adapter takes the next prime
// above a random lower bound.
//
// Any other output difference between the two adapters for identical inputs
// is a defect.
//
// # Selection
//
// Adapters are chosen by configuration:
//
//	id, err := arith.ParseID(cfg.Backend)
//	backend, err := arith.New(id)
package arith

// Package bindings is the thin layer between rsalab and libgmp.
//
// The real implementation wraps github.com/ncw/gmp and only compiles with cgo
// enabled and the gmp build tag set:
//
//	go test -tags gmp ./...
//
// Every other build links the stub, whose functions return ErrNotBuilt and
// whose Available reports false. Callers outside this package never touch
// gmp types: values cross the boundary as non-negative *big.Int and are
// converted through their big-endian byte encoding on each call. That copy is
// the per-call overhead the benchmark harness measures alongside the library
// speed.
package bindings

//go:build !cgo || !gmp

package bindings

import "math/big"

// Stub implementations for builds without cgo or without the gmp tag. They
// let the module compile everywhere and report ErrNotBuilt when called.

// Available reports whether libgmp is linked in.
func Available() bool { return false }

// Version returns an empty string when libgmp is not linked.
func Version() string { return "" }

func ProbablyPrime(*big.Int, int) (bool, error) {
	return false, ErrNotBuilt
}

func GCD(*big.Int, *big.Int) (*big.Int, error) {
	return nil, ErrNotBuilt
}

func ModInverse(*big.Int, *big.Int) (*big.Int, bool, error) {
	return nil, false, ErrNotBuilt
}

func Exp(*big.Int, *big.Int, *big.Int) (*big.Int, error) {
	return nil, ErrNotBuilt
}

func NextPrime(*big.Int, int) (*big.Int, error) {
	return nil, ErrNotBuilt
}

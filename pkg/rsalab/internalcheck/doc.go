// Package internalcheck holds static policy tests over the rsalab packages.
//
// The tests load the library sources with golang.org/x/tools/go/packages and
// walk their syntax trees. They enforce that key generation, encryption and
// benchmarking reach big-integer arithmetic only through arith.Backend, that
// private exponents never reach a logger, and that library code never
// writes to standard output.
//
// # Internal Use Only
//
// This package has no exported API and should not be imported.
package internalcheck

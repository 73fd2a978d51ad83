// Package keygen builds RSA key pairs on top of an arith.Backend.
//
// Three construction modes are offered:
//
//   - FromPrimes: caller-supplied primes, random public exponent.
//   - FromPrimesAndExponent: caller-supplied primes and public exponent.
//   - FromBits: primes drawn by the backend, random public exponent.
//
// The public exponent is never fixed. It is found by rejection sampling over
// [0, 2^(bitlen(phi)-1)) until a value coprime to phi turns up, so two key
// pairs built from the same primes with different seeds usually differ in e.
//
// Example:
//
//	backend, _ := arith.New(arith.Native)
//	gen, err := keygen.NewGenerator(backend, &keygen.Params{
//	    Rand: rand.New(rand.NewSource(42)),
//	})
//	if err != nil {
//	    return err
//	}
//	kp, err := gen.FromBits(ctx, 512)
//
// None of this is secure RSA: there is no padding and the arithmetic is not
// constant time.
package keygen

package keygen

import (
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
)

func newTestGenerator(t *testing.T, backend arith.Backend, seed int64, method InverseMethod) *Generator {
	t.Helper()
	g, err := NewGenerator(backend, &Params{
		Rand:          rand.New(rand.NewSource(seed)),
		InverseMethod: method,
	})
	require.NoError(t, err)
	return g
}

func eachBackend(t *testing.T, fn func(t *testing.T, b arith.Backend)) {
	t.Helper()
	for _, id := range arith.Available() {
		b, err := arith.New(id)
		require.NoError(t, err)
		t.Run(id.String(), func(t *testing.T) { fn(t, b) })
	}
}

func checkInvariants(t *testing.T, kp *KeyPair) {
	t.Helper()
	one := big.NewInt(1)
	e, d, phi := kp.E(), kp.D(), kp.Phi()

	assert.NotEqual(t, 0, kp.P().Cmp(kp.Q()), "p must differ from q")
	assert.Equal(t, 1, e.Cmp(one), "e must exceed 1")
	assert.Equal(t, -1, e.Cmp(phi), "e must be below phi")

	ed := new(big.Int).Mul(e, d)
	assert.Equal(t, 0, ed.Mod(ed, phi).Cmp(one), "e*d mod phi must be 1")
	assert.Equal(t, 0, new(big.Int).Mul(kp.P(), kp.Q()).Cmp(kp.N()))
}

func TestTextbookKey(t *testing.T) {
	for _, method := range []InverseMethod{InverseBackend, InverseEuclid} {
		t.Run(string(method), func(t *testing.T) {
			eachBackend(t, func(t *testing.T, b arith.Backend) {
				g := newTestGenerator(t, b, 1, method)
				kp, err := g.FromPrimesAndExponent(context.Background(), big.NewInt(61), big.NewInt(53), big.NewInt(17))
				require.NoError(t, err)

				assert.Equal(t, int64(3233), kp.N().Int64())
				assert.Equal(t, int64(3120), kp.Phi().Int64())
				assert.Equal(t, int64(17), kp.E().Int64())
				assert.Equal(t, int64(2753), kp.D().Int64())
				assert.Equal(t, 12, kp.BitLen())
			})
		})
	}
}

func TestFromPrimesErrors(t *testing.T) {
	g := newTestGenerator(t, arith.NativeBigInt{}, 1, InverseBackend)
	ctx := context.Background()

	tests := []struct {
		name string
		p, q *big.Int
		want error
	}{
		{"composite_primes", big.NewInt(4), big.NewInt(9), rsalab.ErrPrimalityFailure},
		{"composite_q", big.NewInt(61), big.NewInt(561), rsalab.ErrPrimalityFailure},
		{"one", big.NewInt(1), big.NewInt(53), rsalab.ErrPrimalityFailure},
		{"equal", big.NewInt(61), big.NewInt(61), rsalab.ErrEqualPrimes},
		{"nil", nil, big.NewInt(53), rsalab.ErrInvalidOperand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.FromPrimes(ctx, tt.p, tt.q)
			assert.ErrorIs(t, err, tt.want)
			_, err = g.FromPrimesAndExponent(ctx, tt.p, tt.q, big.NewInt(17))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromPrimesAndExponentRejectsExponent(t *testing.T) {
	g := newTestGenerator(t, arith.NativeBigInt{}, 1, InverseBackend)
	p, q := big.NewInt(61), big.NewInt(53)

	for _, e := range []int64{4, 0, 1, 3120, 3121, 3, 5, -7} {
		_, err := g.FromPrimesAndExponent(context.Background(), p, q, big.NewInt(e))
		assert.ErrorIs(t, err, rsalab.ErrInvalidPublicExponent, "e=%d", e)
	}
}

func TestFromPrimesRandomExponent(t *testing.T) {
	eachBackend(t, func(t *testing.T, b arith.Backend) {
		g := newTestGenerator(t, b, 42, InverseBackend)
		for i := 0; i < 20; i++ {
			kp, err := g.FromPrimes(context.Background(), big.NewInt(61), big.NewInt(53))
			require.NoError(t, err)
			checkInvariants(t, kp)
			assert.Equal(t, -1, kp.E().Cmp(big.NewInt(2048)), "e drawn below 2^(bitlen(phi)-1)")
		}
	})
}

func TestExponentSearchExhausted(t *testing.T) {
	g, err := NewGenerator(arith.NativeBigInt{}, &Params{
		Rand:                rand.New(rand.NewSource(1)),
		MaxExponentAttempts: 25,
	})
	require.NoError(t, err)

	_, err = g.FromPrimes(context.Background(), big.NewInt(2), big.NewInt(3))
	assert.ErrorIs(t, err, rsalab.ErrExponentSearchExhausted)
}

func TestFromBits(t *testing.T) {
	eachBackend(t, func(t *testing.T, b arith.Backend) {
		g := newTestGenerator(t, b, 7, InverseBackend)
		for _, bits := range []int{5, 16, 32, 64, 128, 512} {
			kp, err := g.FromBits(context.Background(), bits)
			require.NoError(t, err, "bits=%d", bits)
			checkInvariants(t, kp)
			assert.True(t, b.IsProbablePrime(kp.P(), rsalab.DefaultCertainty))
			assert.True(t, b.IsProbablePrime(kp.Q(), rsalab.DefaultCertainty))
			assert.GreaterOrEqual(t, kp.BitLen(), bits-1, "bits=%d", bits)
			assert.LessOrEqual(t, kp.BitLen(), bits+2, "bits=%d", bits)
		}
	})
}

func TestFromBitsTooSmall(t *testing.T) {
	g := newTestGenerator(t, arith.NativeBigInt{}, 1, InverseBackend)
	for _, bits := range []int{-1, 0, 2, 4} {
		_, err := g.FromBits(context.Background(), bits)
		assert.ErrorIs(t, err, rsalab.ErrInvalidBitLength, "bits=%d", bits)
	}
}

func TestFromBitsDeterministic(t *testing.T) {
	eachBackend(t, func(t *testing.T, b arith.Backend) {
		first, err := newTestGenerator(t, b, 42, InverseBackend).FromBits(context.Background(), 256)
		require.NoError(t, err)
		second, err := newTestGenerator(t, b, 42, InverseBackend).FromBits(context.Background(), 256)
		require.NoError(t, err)
		assert.True(t, first.Equal(second))

		other, err := newTestGenerator(t, b, 43, InverseBackend).FromBits(context.Background(), 256)
		require.NoError(t, err)
		assert.False(t, first.Equal(other))
	})
}

func TestInverseMethodsAgree(t *testing.T) {
	eachBackend(t, func(t *testing.T, b arith.Backend) {
		viaBackend, err := newTestGenerator(t, b, 5, InverseBackend).FromBits(context.Background(), 256)
		require.NoError(t, err)
		viaEuclid, err := newTestGenerator(t, b, 5, InverseEuclid).FromBits(context.Background(), 256)
		require.NoError(t, err)
		assert.True(t, viaBackend.Equal(viaEuclid))
	})
}

func TestCancelledContext(t *testing.T) {
	g := newTestGenerator(t, arith.NativeBigInt{}, 1, InverseBackend)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.FromBits(ctx, 64)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = g.FromPrimes(ctx, big.NewInt(61), big.NewInt(53))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGeneratorParams(t *testing.T) {
	_, err := NewGenerator(nil, nil)
	assert.Error(t, err)

	_, err = NewGenerator(arith.NativeBigInt{}, &Params{Certainty: -1})
	assert.Error(t, err)

	_, err = NewGenerator(arith.NativeBigInt{}, &Params{MaxExponentAttempts: -1})
	assert.Error(t, err)

	_, err = NewGenerator(arith.NativeBigInt{}, &Params{InverseMethod: "newton"})
	assert.Error(t, err)

	g, err := NewGenerator(arith.NativeBigInt{}, nil)
	require.NoError(t, err)
	assert.Equal(t, rsalab.DefaultCertainty, g.certainty)
	assert.Equal(t, rsalab.DefaultMaxExponentAttempts, g.maxAttempts)
	assert.Equal(t, InverseBackend, g.inverse)
	assert.Equal(t, arith.Native, g.Backend().ID())
}

func TestKeyPairAccessorsCopy(t *testing.T) {
	g := newTestGenerator(t, arith.NativeBigInt{}, 1, InverseBackend)
	p, q, e := big.NewInt(61), big.NewInt(53), big.NewInt(17)
	kp, err := g.FromPrimesAndExponent(context.Background(), p, q, e)
	require.NoError(t, err)

	p.SetInt64(0)
	e.SetInt64(0)
	kp.N().SetInt64(0)
	kp.D().SetInt64(0)

	assert.Equal(t, int64(61), kp.P().Int64())
	assert.Equal(t, int64(17), kp.E().Int64())
	assert.Equal(t, int64(3233), kp.N().Int64())
	assert.Equal(t, int64(2753), kp.D().Int64())
	assert.NotContains(t, kp.String(), "2753")
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt(" 3233\n")
	require.NoError(t, err)
	assert.Equal(t, int64(3233), v.Int64())

	v, err = ParseInt("123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", v.String())

	_, err = ParseInt("0x10")
	assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
	_, err = ParseInt("")
	assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
}

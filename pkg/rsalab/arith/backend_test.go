package arith

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
)

// eachBackend runs fn against every adapter linked into this binary.
func eachBackend(t *testing.T, fn func(t *testing.T, b Backend)) {
	t.Helper()
	for _, id := range Available() {
		b, err := New(id)
		require.NoError(t, err)
		t.Run(id.String(), func(t *testing.T) { fn(t, b) })
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("openssl")
	assert.ErrorIs(t, err, rsalab.ErrUnknownBackend)

	_, err = ParseID("")
	assert.ErrorIs(t, err, rsalab.ErrUnknownBackend)

	id, err := ParseID("native")
	require.NoError(t, err)
	assert.Equal(t, Native, id)
}

func TestRounds(t *testing.T) {
	assert.Equal(t, 10, rounds(20))
	assert.Equal(t, 11, rounds(21))
	assert.Equal(t, 1, rounds(0))
	assert.Equal(t, 1, rounds(-3))
}

func TestIsProbablePrime(t *testing.T) {
	secp := btcec.S256().Params()
	tests := []struct {
		name string
		x    *big.Int
		want bool
	}{
		{"zero", big.NewInt(0), false},
		{"one", big.NewInt(1), false},
		{"two", big.NewInt(2), true},
		{"negative", big.NewInt(-7), false},
		{"textbook_p", big.NewInt(61), true},
		{"textbook_q", big.NewInt(53), true},
		{"textbook_n", big.NewInt(3233), false},
		{"carmichael", big.NewInt(561), false},
		{"mersenne_61", new(big.Int).Sub(new(big.Int).Lsh(one, 61), one), true},
		{"secp256k1_field", secp.P, true},
		{"secp256k1_order", secp.N, true},
		{"secp256k1_order_plus_two", new(big.Int).Add(secp.N, big.NewInt(2)), false},
	}
	eachBackend(t, func(t *testing.T, b Backend) {
		for _, tt := range tests {
			assert.Equal(t, tt.want, b.IsProbablePrime(tt.x, rsalab.DefaultCertainty), tt.name)
		}
	})
}

func TestGCD(t *testing.T) {
	eachBackend(t, func(t *testing.T, b Backend) {
		assert.Equal(t, int64(1), b.GCD(big.NewInt(17), big.NewInt(3120)).Int64())
		assert.Equal(t, int64(6), b.GCD(big.NewInt(-12), big.NewInt(18)).Int64())
		assert.Equal(t, int64(9), b.GCD(big.NewInt(0), big.NewInt(9)).Int64())
		assert.Equal(t, int64(0), b.GCD(big.NewInt(0), big.NewInt(0)).Int64())
	})
}

func TestModInverse(t *testing.T) {
	eachBackend(t, func(t *testing.T, b Backend) {
		inv, err := b.ModInverse(big.NewInt(17), big.NewInt(3120))
		require.NoError(t, err)
		assert.Equal(t, int64(2753), inv.Int64())

		inv, err = b.ModInverse(big.NewInt(-17), big.NewInt(3120))
		require.NoError(t, err)
		assert.Equal(t, int64(3120-2753), inv.Int64())

		inv, err = b.ModInverse(big.NewInt(5), big.NewInt(1))
		require.NoError(t, err)
		assert.Equal(t, int64(0), inv.Int64())

		_, err = b.ModInverse(big.NewInt(6), big.NewInt(3120))
		assert.ErrorIs(t, err, rsalab.ErrNotInvertible)

		_, err = b.ModInverse(big.NewInt(3), big.NewInt(0))
		assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
	})
}

func TestModPow(t *testing.T) {
	eachBackend(t, func(t *testing.T, b Backend) {
		n := big.NewInt(3233)
		c, err := b.ModPow(big.NewInt(65), big.NewInt(17), n)
		require.NoError(t, err)
		assert.Equal(t, int64(2790), c.Int64())

		m, err := b.ModPow(c, big.NewInt(2753), n)
		require.NoError(t, err)
		assert.Equal(t, int64(65), m.Int64())

		r, err := b.ModPow(big.NewInt(-2), big.NewInt(3), big.NewInt(7))
		require.NoError(t, err)
		assert.Equal(t, int64(6), r.Int64())

		r, err = b.ModPow(big.NewInt(9), big.NewInt(0), big.NewInt(7))
		require.NoError(t, err)
		assert.Equal(t, int64(1), r.Int64())

		_, err = b.ModPow(big.NewInt(2), big.NewInt(-1), n)
		assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
		_, err = b.ModPow(big.NewInt(2), big.NewInt(3), big.NewInt(0))
		assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
	})
}

func TestRandomBelow(t *testing.T) {
	eachBackend(t, func(t *testing.T, b Backend) {
		bound := big.NewInt(1000)
		rnd := rand.New(rand.NewSource(1))
		for i := 0; i < 200; i++ {
			v, err := b.RandomBelow(rnd, bound)
			require.NoError(t, err)
			assert.True(t, v.Sign() >= 0 && v.Cmp(bound) < 0, "value %s out of range", v)
		}

		_, err := b.RandomBelow(nil, bound)
		assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
		_, err = b.RandomBelow(rnd, big.NewInt(0))
		assert.ErrorIs(t, err, rsalab.ErrInvalidOperand)
	})
}

func TestGeneratePrime(t *testing.T) {
	eachBackend(t, func(t *testing.T, b Backend) {
		rnd := rand.New(rand.NewSource(7))
		for _, bits := range []int{2, 8, 16, 64, 256} {
			p, err := b.GeneratePrime(rnd, bits, rsalab.DefaultCertainty)
			require.NoError(t, err)
			assert.True(t, p.ProbablyPrime(20), "bits=%d: %s is composite", bits, p)
			assert.GreaterOrEqual(t, p.BitLen(), bits)
			assert.LessOrEqual(t, p.BitLen(), bits+1)
		}

		_, err := b.GeneratePrime(rnd, 1, rsalab.DefaultCertainty)
		assert.ErrorIs(t, err, rsalab.ErrInvalidBitLength)
	})
}

func TestGeneratePrimeDeterministic(t *testing.T) {
	eachBackend(t, func(t *testing.T, b Backend) {
		p1, err := b.GeneratePrime(rand.New(rand.NewSource(42)), 128, rsalab.DefaultCertainty)
		require.NoError(t, err)
		p2, err := b.GeneratePrime(rand.New(rand.NewSource(42)), 128, rsalab.DefaultCertainty)
		require.NoError(t, err)
		assert.Equal(t, 0, p1.Cmp(p2))
	})
}

func TestNativeGeneratePrimeExactWidth(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		p, err := NativeBigInt{}.GeneratePrime(rnd, 32, rsalab.DefaultCertainty)
		require.NoError(t, err)
		assert.Equal(t, 32, p.BitLen())
	}
}

// TestBackendsAgree feeds identical operands to both adapters and requires
// identical answers. It only runs when libgmp is linked.
func TestBackendsAgree(t *testing.T) {
	ext, err := New(External)
	if err != nil {
		t.Skipf("gmp backend unavailable: %v", err)
	}
	nat := NativeBigInt{}
	rnd := rand.New(rand.NewSource(99))
	bound := new(big.Int).Lsh(one, 512)
	mod := btcec.S256().Params().P
	for i := 0; i < 50; i++ {
		a, err := nat.RandomBelow(rnd, bound)
		require.NoError(t, err)
		e, err := nat.RandomBelow(rnd, bound)
		require.NoError(t, err)

		want, err := nat.ModPow(a, e, mod)
		require.NoError(t, err)
		got, err := ext.ModPow(a, e, mod)
		require.NoError(t, err)
		assert.Equal(t, 0, want.Cmp(got), "mod_pow diverges for a=%s e=%s", a, e)

		assert.Equal(t, 0, nat.GCD(a, e).Cmp(ext.GCD(a, e)))
		assert.Equal(t, nat.IsProbablePrime(a, 20), ext.IsProbablePrime(a, 20))

		if a.Sign() != 0 {
			want, err := nat.ModInverse(a, mod)
			require.NoError(t, err)
			got, err := ext.ModInverse(a, mod)
			require.NoError(t, err)
			assert.Equal(t, 0, want.Cmp(got))
		}
	}
}

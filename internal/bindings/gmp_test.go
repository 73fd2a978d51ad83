//go:build cgo && gmp

package bindings

import (
	"math/big"
	"testing"
)

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad integer literal %q", s)
	}
	return v
}

// TestExpAgainstBigInt checks mpz_powm against math/big on the same inputs.
func TestExpAgainstBigInt(t *testing.T) {
	tests := []struct {
		name string
		base string
		exp  string
		mod  string
	}{
		{"small_numbers", "2", "10", "1000"},
		{"textbook_encrypt", "65", "17", "3233"},
		{"textbook_decrypt", "2790", "2753", "3233"},
		{"large_base", "123456789012345678901234567890", "2", "1000000007"},
		{"large_exponent", "2", "123456789012345678901234567890", "1000000007"},
		{"all_large", "123456789012345678901234567890", "987654321098765432109876543210", "111111111111111111111111111111"},
		{"zero_base", "0", "5", "7"},
		{"zero_exponent", "5", "0", "7"},
		{"unit_modulus", "5", "3", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, exp, mod := mustInt(t, tt.base), mustInt(t, tt.exp), mustInt(t, tt.mod)
			got, err := Exp(base, exp, mod)
			if err != nil {
				t.Fatalf("Exp failed: %v", err)
			}
			want := new(big.Int).Exp(base, exp, mod)
			if got.Cmp(want) != 0 {
				t.Errorf("Exp = %s, want %s", got, want)
			}
		})
	}
}

func TestModInverseAgainstBigInt(t *testing.T) {
	got, ok, err := ModInverse(big.NewInt(17), big.NewInt(3120))
	if err != nil || !ok {
		t.Fatalf("ModInverse failed: ok=%v err=%v", ok, err)
	}
	if got.Int64() != 2753 {
		t.Errorf("ModInverse = %s, want 2753", got)
	}

	_, ok, err = ModInverse(big.NewInt(4), big.NewInt(3120))
	if err != nil {
		t.Fatalf("ModInverse failed: %v", err)
	}
	if ok {
		t.Error("4 must not be invertible modulo 3120")
	}
}

func TestGCDZeroOperands(t *testing.T) {
	g, err := GCD(big.NewInt(0), big.NewInt(12))
	if err != nil {
		t.Fatalf("GCD failed: %v", err)
	}
	if g.Int64() != 12 {
		t.Errorf("GCD(0, 12) = %s, want 12", g)
	}
}

func TestNextPrime(t *testing.T) {
	tests := []struct{ in, want int64 }{
		{0, 2}, {2, 2}, {3, 3}, {14, 17}, {90, 97}, {7919, 7919},
	}
	for _, tt := range tests {
		got, err := NextPrime(big.NewInt(tt.in), 10)
		if err != nil {
			t.Fatalf("NextPrime(%d) failed: %v", tt.in, err)
		}
		if got.Int64() != tt.want {
			t.Errorf("NextPrime(%d) = %s, want %d", tt.in, got, tt.want)
		}
	}
}

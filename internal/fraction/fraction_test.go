package fraction

import (
	"errors"
	"math/big"
	"testing"
)

func mustNew(t *testing.T, num, den int64) *Fraction {
	t.Helper()
	f, err := New(big.NewInt(num), big.NewInt(den))
	if err != nil {
		t.Fatalf("New(%d, %d): %v", num, den, err)
	}
	return f
}

func TestNewNormalizesSign(t *testing.T) {
	f := mustNew(t, 1, -2)
	if f.Numerator.Int64() != -1 || f.Denominator.Int64() != 2 {
		t.Fatalf("sign not moved to numerator: %s/%s", f.Numerator, f.Denominator)
	}
	f = mustNew(t, -3, -4)
	if f.Numerator.Int64() != 3 || f.Denominator.Int64() != 4 {
		t.Fatalf("double negative not normalized: %s/%s", f.Numerator, f.Denominator)
	}
}

func TestNewZeroDenominator(t *testing.T) {
	if _, err := New(big.NewInt(1), big.NewInt(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestArithmetic(t *testing.T) {
	half := mustNew(t, 1, 2)
	third := mustNew(t, 1, 3)

	if got := half.Add(third); !got.Equal(mustNew(t, 5, 6)) {
		t.Fatalf("1/2 + 1/3 = %s/%s", got.Numerator, got.Denominator)
	}
	if got := half.Sub(third); !got.Equal(mustNew(t, 1, 6)) {
		t.Fatalf("1/2 - 1/3 = %s/%s", got.Numerator, got.Denominator)
	}
	if got := half.Mul(third); !got.Equal(mustNew(t, 1, 6)) {
		t.Fatalf("1/2 * 1/3 = %s/%s", got.Numerator, got.Denominator)
	}
	got, err := half.Div(third)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !got.Equal(mustNew(t, 3, 2)) {
		t.Fatalf("1/2 / 1/3 = %s/%s", got.Numerator, got.Denominator)
	}
}

func TestDivByZeroValue(t *testing.T) {
	zero := FromInt(0)
	if _, err := FromInt(1).Div(zero); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := zero.Invert(); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero for Invert, got %v", err)
	}
}

func TestCmpCrossMultiplication(t *testing.T) {
	// 1/3 vs 333333/1000000 differs only in the seventh decimal; a float64
	// detour would call them equal.
	third := mustNew(t, 1, 3)
	near := mustNew(t, 333333, 1000000)
	if !third.GreaterThan(near) {
		t.Fatalf("1/3 must compare greater than 0.333333")
	}
	if !near.LessThan(third) {
		t.Fatalf("0.333333 must compare less than 1/3")
	}
	if !mustNew(t, 2, 4).Equal(mustNew(t, 1, 2)) {
		t.Fatalf("2/4 must equal 1/2")
	}
}

func TestQuotientTruncatesTowardZero(t *testing.T) {
	if got := mustNew(t, 7, 2).Quotient(); got.Int64() != 3 {
		t.Fatalf("7/2 quotient = %s", got)
	}
	if got := mustNew(t, -7, 2).Quotient(); got.Int64() != -3 {
		t.Fatalf("-7/2 quotient = %s", got)
	}
}

func TestToFixedRounding(t *testing.T) {
	cases := []struct {
		num, den int64
		places   int
		mode     Rounding
		want     string
	}{
		{5, 100, 1, RoundDown, "0.0"},
		{5, 100, 1, RoundHalfUp, "0.1"},
		{5, 100, 1, RoundUp, "0.1"},
		{-5, 100, 1, RoundDown, "0.0"},
		{-5, 100, 1, RoundHalfUp, "-0.1"},
		{-5, 100, 1, RoundUp, "-0.1"},
		{1, 8, 2, RoundDown, "0.12"},
		{1, 8, 2, RoundHalfUp, "0.13"},
		{1, 8, 2, RoundUp, "0.13"},
		{-1, 8, 2, RoundHalfUp, "-0.13"},
		{7, 2, 0, RoundDown, "3"},
		{7, 2, 0, RoundHalfUp, "4"},
		{7, 2, 0, RoundUp, "4"},
		{3, 1, 2, RoundUp, "3.00"},
	}
	for _, tc := range cases {
		got := mustNew(t, tc.num, tc.den).ToFixed(tc.places, tc.mode)
		if got != tc.want {
			t.Fatalf("ToFixed(%d/%d, %d, %d) = %q, want %q", tc.num, tc.den, tc.places, tc.mode, got, tc.want)
		}
	}
}

func TestToSignificant(t *testing.T) {
	cases := []struct {
		num, den    int64
		significant int
		mode        Rounding
		want        string
	}{
		{1, 3, 5, RoundDown, "0.33333"},
		{1, 3, 5, RoundUp, "0.33334"},
		{1, 3, 5, RoundHalfUp, "0.33333"},
		{-1, 3, 2, RoundHalfUp, "-0.33"},
		{123456, 1, 4, RoundDown, "123400"},
		{123456, 1, 4, RoundHalfUp, "123500"},
		{123456, 1000000, 3, RoundDown, "0.123"},
		{123456, 1000000, 3, RoundUp, "0.124"},
		{100, 1, 5, RoundDown, "100"},
		{0, 1, 5, RoundDown, "0"},
	}
	for _, tc := range cases {
		got := mustNew(t, tc.num, tc.den).ToSignificant(tc.significant, tc.mode)
		if got != tc.want {
			t.Fatalf("ToSignificant(%d/%d, %d, %d) = %q, want %q", tc.num, tc.den, tc.significant, tc.mode, got, tc.want)
		}
	}
}

func TestOperationsDoNotMutate(t *testing.T) {
	a := mustNew(t, 1, 2)
	b := mustNew(t, 1, 3)
	a.Add(b)
	a.Mul(b)
	if a.Numerator.Int64() != 1 || a.Denominator.Int64() != 2 {
		t.Fatalf("operand mutated: %s/%s", a.Numerator, a.Denominator)
	}
	if b.Numerator.Int64() != 1 || b.Denominator.Int64() != 3 {
		t.Fatalf("operand mutated: %s/%s", b.Numerator, b.Denominator)
	}
}

package entity

import (
	"math/big"
	"testing"

	"positionScope/internal/fraction"
)

func testPair(t *testing.T, decimals0, decimals1 uint8) (Token, Token) {
	t.Helper()
	token0 := NewToken(1, "0x0000000000000000000000000000000000000001", decimals0, "T0", "Token Zero")
	token1 := NewToken(1, "0x0000000000000000000000000000000000000002", decimals1, "T1", "Token One")
	return token0, token1
}

func TestNewPriceFoldsDecimals(t *testing.T) {
	// One whole 18-decimal base buys one whole 6-decimal quote: the raw
	// smallest-unit ratio is lopsided but the adjusted price is exactly 1.
	base, quote := testPair(t, 18, 6)
	price, err := NewPrice(base, quote, pow10(18), pow10(6))
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	if !price.Fraction().Equal(fraction.FromInt(1)) {
		t.Fatalf("adjusted price = %s/%s, want 1", price.Fraction().Numerator, price.Fraction().Denominator)
	}
	if got := price.ToSignificant(5, fraction.RoundDown); got != "1" {
		t.Fatalf("ToSignificant = %q", got)
	}
}

func TestPriceRawFraction(t *testing.T) {
	base, quote := testPair(t, 18, 6)
	price, err := NewPrice(base, quote, big.NewInt(3), big.NewInt(7))
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}

	raw, err := price.RawFraction()
	if err != nil {
		t.Fatalf("RawFraction: %v", err)
	}
	want, err := fraction.New(big.NewInt(7), big.NewInt(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !raw.Equal(want) {
		t.Fatalf("raw fraction = %s/%s, want 7/3", raw.Numerator, raw.Denominator)
	}
}

func TestPriceInvertRoundTrip(t *testing.T) {
	base, quote := testPair(t, 18, 6)
	price, err := NewPrice(base, quote, big.NewInt(4), big.NewInt(10))
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}

	inverted, err := price.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	if !inverted.Base.Equal(quote) || !inverted.Quote.Equal(base) {
		t.Fatalf("Invert must swap base and quote")
	}

	back, err := inverted.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	if !back.Equal(price) {
		t.Fatalf("double inversion must restore the price")
	}
}

func TestPriceComparisons(t *testing.T) {
	base, quote := testPair(t, 18, 18)
	cheap, err := NewPrice(base, quote, big.NewInt(2), big.NewInt(1))
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}
	dear, err := NewPrice(base, quote, big.NewInt(1), big.NewInt(2))
	if err != nil {
		t.Fatalf("NewPrice: %v", err)
	}

	if !cheap.LessThan(dear) {
		t.Fatalf("1/2 must be less than 2")
	}
	if !dear.GreaterThan(cheap) {
		t.Fatalf("2 must be greater than 1/2")
	}
	if cheap.Equal(dear) {
		t.Fatalf("distinct prices must not be equal")
	}
}

func TestNewPriceZeroDenominator(t *testing.T) {
	base, quote := testPair(t, 18, 18)
	if _, err := NewPrice(base, quote, big.NewInt(0), big.NewInt(1)); err == nil {
		t.Fatalf("expected error for zero denominator")
	}
}

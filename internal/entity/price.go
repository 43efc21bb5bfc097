package entity

import (
	"math/big"

	"positionScope/internal/fraction"
)

// Price is an exchange rate between a base and a quote token. The raw
// numerator/denominator passed at construction is in smallest token units;
// the 10^baseDecimals / 10^quoteDecimals scalar is folded into the stored
// fraction immediately, so the rational already reads as quote per base in
// human units.
type Price struct {
	Base     Token
	Quote    Token
	fraction *fraction.Fraction
}

// NewPrice builds a price from a raw smallest-unit ratio: denominator units
// of base buy numerator units of quote. A zero denominator fails with
// fraction.ErrDivisionByZero.
func NewPrice(base, quote Token, denominator, numerator *big.Int) (*Price, error) {
	num := new(big.Int).Mul(numerator, pow10(base.Decimals))
	den := new(big.Int).Mul(denominator, pow10(quote.Decimals))
	frac, err := fraction.New(num, den)
	if err != nil {
		return nil, err
	}
	return &Price{Base: base, Quote: quote, fraction: frac}, nil
}

// Fraction returns the decimal-adjusted rational value (quote per base).
func (p *Price) Fraction() *fraction.Fraction { return p.fraction }

// RawFraction returns the unscaled smallest-unit ratio the price was
// constructed from, up to representation.
func (p *Price) RawFraction() (*fraction.Fraction, error) {
	num := new(big.Int).Mul(p.fraction.Numerator, pow10(p.Quote.Decimals))
	den := new(big.Int).Mul(p.fraction.Denominator, pow10(p.Base.Decimals))
	return fraction.New(num, den)
}

// Invert returns the price of the quote token in terms of the base token.
// A zero price cannot be inverted.
func (p *Price) Invert() (*Price, error) {
	inv, err := p.fraction.Invert()
	if err != nil {
		return nil, err
	}
	return &Price{Base: p.Quote, Quote: p.Base, fraction: inv}, nil
}

// Equal reports numeric equality of two prices with the same base and quote.
func (p *Price) Equal(other *Price) bool {
	return p.Base.Equal(other.Base) && p.Quote.Equal(other.Quote) && p.fraction.Equal(other.fraction)
}

// LessThan compares the adjusted rational values.
func (p *Price) LessThan(other *Price) bool { return p.fraction.LessThan(other.fraction) }

// GreaterThan compares the adjusted rational values.
func (p *Price) GreaterThan(other *Price) bool { return p.fraction.GreaterThan(other.fraction) }

// ToSignificant renders the price with the given significant digits.
func (p *Price) ToSignificant(significant int, mode fraction.Rounding) string {
	return p.fraction.ToSignificant(significant, mode)
}

// ToFixed renders the price with a fixed number of decimal places.
func (p *Price) ToFixed(places int, mode fraction.Rounding) string {
	return p.fraction.ToFixed(places, mode)
}

func pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

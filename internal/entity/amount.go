package entity

import (
	"math/big"
	"regexp"

	"positionScope/internal/fraction"
)

// CurrencyAmount is a quantity of a token in its smallest on-chain unit.
type CurrencyAmount struct {
	Token Token
	Raw   *big.Int
}

// NewCurrencyAmount wraps a raw smallest-unit quantity.
func NewCurrencyAmount(token Token, raw *big.Int) *CurrencyAmount {
	return &CurrencyAmount{Token: token, Raw: new(big.Int).Set(raw)}
}

// AsFraction returns the amount in human units as an exact rational.
func (a *CurrencyAmount) AsFraction() *fraction.Fraction {
	frac, _ := fraction.New(a.Raw, pow10(a.Token.Decimals))
	return frac
}

// ToExact renders the full-precision decimal amount.
func (a *CurrencyAmount) ToExact() string {
	return a.AsFraction().ToFixed(int(a.Token.Decimals), fraction.RoundDown)
}

// ToSignificant renders the amount with the given significant digits.
func (a *CurrencyAmount) ToSignificant(significant int, mode fraction.Rounding) string {
	return a.AsFraction().ToSignificant(significant, mode)
}

// ToFixed renders the amount with a fixed number of decimal places.
func (a *CurrencyAmount) ToFixed(places int, mode fraction.Rounding) string {
	return a.AsFraction().ToFixed(places, mode)
}

var amountPattern = regexp.MustCompile(`^\d*\.?\d+$`)

// TryParseCurrencyAmount converts a user-typed decimal string into a raw
// amount using the token's decimals. It reports false for anything that is
// not yet a spendable amount: malformed input, more fractional digits than
// the token carries, or a value that scales to exactly zero. None of these
// are errors; the caller simply has no amount yet.
func TryParseCurrencyAmount(value string, token Token) (*CurrencyAmount, bool) {
	if !amountPattern.MatchString(value) {
		return nil, false
	}

	whole := value
	frac := ""
	for i := 0; i < len(value); i++ {
		if value[i] == '.' {
			whole = value[:i]
			frac = value[i+1:]
			break
		}
	}
	if len(frac) > int(token.Decimals) {
		return nil, false
	}

	digits, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, false
	}

	// raw = digits * 10^(decimals - len(frac)), exact by construction.
	shift := int(token.Decimals) - len(frac)
	raw := digits.Mul(digits, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(shift)), nil))
	if raw.Sign() == 0 {
		return nil, false
	}
	return &CurrencyAmount{Token: token, Raw: raw}, true
}

package entity

import (
	"math/big"

	"positionScope/internal/fraction"
	"positionScope/internal/tickmath"
)

// TickToPrice converts a tick into the price of quote in terms of base.
// The tick itself encodes token1 per token0 in raw units; when base is
// token1 the squared ratio lands on the denominator instead.
func TickToPrice(base, quote Token, tick int) (*Price, error) {
	sqrtRatioX96, err := tickmath.GetSqrtRatioAtTick(tick)
	if err != nil {
		return nil, err
	}
	ratioX192 := new(big.Int).Mul(sqrtRatioX96, sqrtRatioX96)

	sorted, err := base.SortsBefore(quote)
	if err != nil {
		return nil, err
	}
	if sorted {
		return NewPrice(base, quote, q192(), ratioX192)
	}
	return NewPrice(base, quote, ratioX192, q192())
}

// PriceToClosestTick returns the tick whose reconstructed price is nearest
// to the given price. The sqrt-domain rounding inside GetTickAtSqrtRatio
// does not always land on the price-domain closest tick, so both the
// candidate and its successor are re-derived and compared; equidistant
// inputs keep the lower tick.
func PriceToClosestTick(price *Price) (int, error) {
	sorted, err := price.Base.SortsBefore(price.Quote)
	if err != nil {
		return 0, err
	}

	raw, err := price.RawFraction()
	if err != nil {
		return 0, err
	}

	var sqrtRatioX96 *big.Int
	if sorted {
		sqrtRatioX96, err = tickmath.EncodeSqrtRatioX96(raw.Numerator, raw.Denominator)
	} else {
		sqrtRatioX96, err = tickmath.EncodeSqrtRatioX96(raw.Denominator, raw.Numerator)
	}
	if err != nil {
		return 0, err
	}

	tick, err := tickmath.GetTickAtSqrtRatio(sqrtRatioX96)
	if err != nil {
		return 0, err
	}
	if tick >= tickmath.MaxTick {
		return tick, nil
	}

	atTick, err := TickToPrice(price.Base, price.Quote, tick)
	if err != nil {
		return 0, err
	}
	atNext, err := TickToPrice(price.Base, price.Quote, tick+1)
	if err != nil {
		return 0, err
	}

	distTick := absDistance(price.Fraction(), atTick.Fraction())
	distNext := absDistance(price.Fraction(), atNext.Fraction())
	if distNext.LessThan(distTick) {
		return tick + 1, nil
	}
	return tick, nil
}

// TryParsePrice parses a user-typed decimal string as the price of quote in
// base units. It reports false when the string is not yet a valid price.
func TryParsePrice(base, quote Token, value string) (*Price, bool) {
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
	digits, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok || digits.Sign() == 0 {
		return nil, false
	}

	denominator := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
	denominator.Mul(denominator, pow10(base.Decimals))
	numerator := new(big.Int).Mul(digits, pow10(quote.Decimals))

	price, err := NewPrice(base, quote, denominator, numerator)
	if err != nil {
		return nil, false
	}
	return price, true
}

// TryParseTick parses a typed price and snaps it to the nearest usable
// tick. Prices beyond the representable sqrt-ratio range clamp to
// MinTick/MaxTick rather than failing; only the raw conversion entry
// points reject out-of-range values.
func TryParseTick(base, quote Token, value string, tickSpacing int) (int, bool) {
	price, ok := TryParsePrice(base, quote, value)
	if !ok {
		return 0, false
	}

	raw, err := price.RawFraction()
	if err != nil {
		return 0, false
	}
	sorted, err := price.Base.SortsBefore(price.Quote)
	if err != nil {
		return 0, false
	}

	var sqrtRatioX96 *big.Int
	if sorted {
		sqrtRatioX96, err = tickmath.EncodeSqrtRatioX96(raw.Numerator, raw.Denominator)
	} else {
		sqrtRatioX96, err = tickmath.EncodeSqrtRatioX96(raw.Denominator, raw.Numerator)
	}
	if err != nil {
		return 0, false
	}

	var tick int
	switch {
	case sqrtRatioX96.Cmp(tickmath.MaxSqrtRatio) >= 0:
		tick = tickmath.MaxTick
	case sqrtRatioX96.Cmp(tickmath.MinSqrtRatio) <= 0:
		tick = tickmath.MinTick
	default:
		tick, err = PriceToClosestTick(price)
		if err != nil {
			return 0, false
		}
	}

	usable, err := tickmath.NearestUsableTick(tick, tickSpacing)
	if err != nil {
		return 0, false
	}
	return usable, true
}

// absDistance returns |a - b| as a fraction.
func absDistance(a, b *fraction.Fraction) *fraction.Fraction {
	diff := a.Sub(b)
	if diff.Sign() < 0 {
		return &fraction.Fraction{
			Numerator:   new(big.Int).Neg(diff.Numerator),
			Denominator: diff.Denominator,
		}
	}
	return diff
}

func q192() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), 192)
}

// Package sqrtprice implements the amount-delta and liquidity arithmetic of
// concentrated-liquidity ranges over Q64.96 square-root prices. All products
// are taken at full width before dividing, since liquidity * 2^96 routinely
// exceeds 192 bits.
package sqrtprice

import (
	"errors"
	"math/big"
)

// ErrInvalidRange is returned when a bound pair cannot be ordered.
var ErrInvalidRange = errors.New("invalid sqrt ratio range")

var (
	bigOne = big.NewInt(1)
	// Q96 is the Q64.96 fixed-point one.
	Q96 = new(big.Int).Lsh(bigOne, 96)
	// Q192 is Q96 squared, the scale of a squared sqrt ratio.
	Q192 = new(big.Int).Lsh(bigOne, 192)
)

// MulDiv returns floor(a * b / denominator).
func MulDiv(a, b, denominator *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	return product.Div(product, denominator)
}

// MulDivRoundingUp returns ceil(a * b / denominator).
func MulDivRoundingUp(a, b, denominator *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	quot, rem := product.DivMod(product, denominator, new(big.Int))
	if rem.Sign() != 0 {
		quot.Add(quot, bigOne)
	}
	return quot
}

// sortRatios orders a bound pair ascending.
func sortRatios(a, b *big.Int) (*big.Int, *big.Int) {
	if a.Cmp(b) > 0 {
		return b, a
	}
	return a, b
}

// GetAmount0Delta returns the token0 amount covered by liquidity between the
// two sqrt ratios: liquidity * 2^96 * (B - A) / (A * B). Round up when
// sizing a deposit, down when sizing a withdrawal. Equal bounds yield zero.
func GetAmount0Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) (*big.Int, error) {
	lower, upper := sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	if lower.Sign() <= 0 {
		return nil, ErrInvalidRange
	}

	numerator1 := new(big.Int).Lsh(liquidity, 96)
	numerator2 := new(big.Int).Sub(upper, lower)

	if roundUp {
		return MulDivRoundingUp(MulDivRoundingUp(numerator1, numerator2, upper), bigOne, lower), nil
	}
	amount := MulDiv(numerator1, numerator2, upper)
	return amount.Div(amount, lower), nil
}

// GetAmount1Delta returns the token1 amount covered by liquidity between the
// two sqrt ratios: liquidity * (B - A) / 2^96, rounded per roundUp.
func GetAmount1Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) (*big.Int, error) {
	lower, upper := sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	if lower.Sign() < 0 {
		return nil, ErrInvalidRange
	}

	diff := new(big.Int).Sub(upper, lower)
	if roundUp {
		return MulDivRoundingUp(liquidity, diff, Q96), nil
	}
	return MulDiv(liquidity, diff, Q96), nil
}

// MaxLiquidityForAmount0 solves for the largest liquidity such that the
// token0 amount needed between the bounds does not exceed amount0. The
// precise path keeps the full-width numerator amount0 * A * B before any
// division; the imprecise path folds A * B / 2^96 into an intermediate
// first, which can lose up to one unit at extreme liquidity and exists only
// as the reference's faster alternative.
func MaxLiquidityForAmount0(sqrtRatioAX96, sqrtRatioBX96, amount0 *big.Int, useFullPrecision bool) *big.Int {
	lower, upper := sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	diff := new(big.Int).Sub(upper, lower)
	if diff.Sign() == 0 {
		return new(big.Int)
	}

	if !useFullPrecision {
		intermediate := MulDiv(lower, upper, Q96)
		return MulDiv(amount0, intermediate, diff)
	}

	numerator := new(big.Int).Mul(amount0, lower)
	numerator.Mul(numerator, upper)
	denominator := new(big.Int).Mul(Q96, diff)
	return numerator.Div(numerator, denominator)
}

// MaxLiquidityForAmount1 solves for the largest liquidity such that the
// token1 amount needed between the bounds does not exceed amount1:
// amount1 * 2^96 / (B - A).
func MaxLiquidityForAmount1(sqrtRatioAX96, sqrtRatioBX96, amount1 *big.Int) *big.Int {
	lower, upper := sortRatios(sqrtRatioAX96, sqrtRatioBX96)
	diff := new(big.Int).Sub(upper, lower)
	if diff.Sign() == 0 {
		return new(big.Int)
	}
	return MulDiv(amount1, Q96, diff)
}

// MaxLiquidityForAmounts computes the largest liquidity fundable by both
// amounts at the current price: below the range only token0 binds, above it
// only token1, and inside it the smaller of the two candidates wins so that
// neither amount is exceeded.
func MaxLiquidityForAmounts(sqrtRatioCurrentX96, sqrtRatioAX96, sqrtRatioBX96, amount0, amount1 *big.Int, useFullPrecision bool) *big.Int {
	lower, upper := sortRatios(sqrtRatioAX96, sqrtRatioBX96)

	if sqrtRatioCurrentX96.Cmp(lower) <= 0 {
		return MaxLiquidityForAmount0(lower, upper, amount0, useFullPrecision)
	}
	if sqrtRatioCurrentX96.Cmp(upper) < 0 {
		liquidity0 := MaxLiquidityForAmount0(sqrtRatioCurrentX96, upper, amount0, useFullPrecision)
		liquidity1 := MaxLiquidityForAmount1(lower, sqrtRatioCurrentX96, amount1)
		if liquidity0.Cmp(liquidity1) < 0 {
			return liquidity0
		}
		return liquidity1
	}
	return MaxLiquidityForAmount1(lower, upper, amount1)
}

package tickmath

import "math/big"

// EncodeSqrtRatioX96 converts a price given as amount1/amount0 into its
// Q64.96 square root. The computation is floor(sqrt(amount1 * 2^192 /
// amount0)) using exact integer arithmetic; the 2^192 scale is far outside
// float64 range. A zero amount0 fails with ErrDivisionByZero.
func EncodeSqrtRatioX96(amount1, amount0 *big.Int) (*big.Int, error) {
	if amount0.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	numerator := new(big.Int).Lsh(amount1, 192)
	ratioX192 := numerator.Div(numerator, amount0)
	return new(big.Int).Sqrt(ratioX192), nil
}

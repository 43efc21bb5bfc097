package position

import (
	"math/big"

	"positionScope/internal/sqrtprice"
	"positionScope/internal/tickmath"
)

// Position is a liquidity range on a pool. Amounts are not stored; they are
// derived on demand from the pool's current sqrt price and the range bounds.
type Position struct {
	Pool      *Pool
	TickLower int
	TickUpper int
	Liquidity *big.Int
}

// New builds a position with a known liquidity. The range must be ordered,
// in bounds, and aligned to the pool's tick spacing.
func New(pool *Pool, tickLower, tickUpper int, liquidity *big.Int) (*Position, error) {
	if err := checkRange(pool, tickLower, tickUpper); err != nil {
		return nil, err
	}
	return &Position{
		Pool:      pool,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: new(big.Int).Set(liquidity),
	}, nil
}

// FromAmount0 sizes the largest position fundable with amount0 of token0.
// Below the range the whole span is solved against token0; inside it only
// the [current, upper] slice is; at or above the upper bound token0 buys no
// liquidity at all, so the result is zero. useFullPrecision selects the
// exact division path; the fast path may undershoot by one unit.
func FromAmount0(pool *Pool, tickLower, tickUpper int, amount0 *big.Int, useFullPrecision bool) (*Position, error) {
	if err := checkRange(pool, tickLower, tickUpper); err != nil {
		return nil, err
	}

	sqrtLower, sqrtUpper, err := rangeSqrtRatios(tickLower, tickUpper)
	if err != nil {
		return nil, err
	}

	var liquidity *big.Int
	switch {
	case pool.TickCurrent < tickLower:
		liquidity = sqrtprice.MaxLiquidityForAmount0(sqrtLower, sqrtUpper, amount0, useFullPrecision)
	case pool.TickCurrent < tickUpper:
		liquidity = sqrtprice.MaxLiquidityForAmount0(pool.SqrtRatioX96, sqrtUpper, amount0, useFullPrecision)
	default:
		liquidity = new(big.Int)
	}

	return New(pool, tickLower, tickUpper, liquidity)
}

// FromAmount1 sizes the largest position fundable with amount1 of token1.
// The token1 solve has a single exact path; there is no precision toggle.
func FromAmount1(pool *Pool, tickLower, tickUpper int, amount1 *big.Int) (*Position, error) {
	if err := checkRange(pool, tickLower, tickUpper); err != nil {
		return nil, err
	}

	sqrtLower, sqrtUpper, err := rangeSqrtRatios(tickLower, tickUpper)
	if err != nil {
		return nil, err
	}

	var liquidity *big.Int
	switch {
	case pool.TickCurrent < tickLower:
		liquidity = new(big.Int)
	case pool.TickCurrent < tickUpper:
		liquidity = sqrtprice.MaxLiquidityForAmount1(sqrtLower, pool.SqrtRatioX96, amount1)
	default:
		liquidity = sqrtprice.MaxLiquidityForAmount1(sqrtLower, sqrtUpper, amount1)
	}

	return New(pool, tickLower, tickUpper, liquidity)
}

// FromAmounts sizes a position fundable with both amounts at once. The
// smaller of the two single-token candidates wins, so neither amount is
// exceeded.
func FromAmounts(pool *Pool, tickLower, tickUpper int, amount0, amount1 *big.Int, useFullPrecision bool) (*Position, error) {
	if err := checkRange(pool, tickLower, tickUpper); err != nil {
		return nil, err
	}

	sqrtLower, sqrtUpper, err := rangeSqrtRatios(tickLower, tickUpper)
	if err != nil {
		return nil, err
	}

	liquidity := sqrtprice.MaxLiquidityForAmounts(
		pool.SqrtRatioX96, sqrtLower, sqrtUpper, amount0, amount1, useFullPrecision,
	)
	return New(pool, tickLower, tickUpper, liquidity)
}

// Amount0 returns the token0 the position currently represents, rounded
// down as a withdrawal entitlement.
func (p *Position) Amount0() (*big.Int, error) {
	return p.amount0(false)
}

// Amount1 returns the token1 the position currently represents, rounded
// down as a withdrawal entitlement.
func (p *Position) Amount1() (*big.Int, error) {
	return p.amount1(false)
}

// MintAmounts returns the deposit the position requires, rounded up so the
// mint never under-funds.
func (p *Position) MintAmounts() (amount0, amount1 *big.Int, err error) {
	amount0, err = p.amount0(true)
	if err != nil {
		return nil, nil, err
	}
	amount1, err = p.amount1(true)
	if err != nil {
		return nil, nil, err
	}
	return amount0, amount1, nil
}

func (p *Position) amount0(roundUp bool) (*big.Int, error) {
	sqrtLower, sqrtUpper, err := rangeSqrtRatios(p.TickLower, p.TickUpper)
	if err != nil {
		return nil, err
	}

	switch {
	case p.Pool.TickCurrent < p.TickLower:
		return sqrtprice.GetAmount0Delta(sqrtLower, sqrtUpper, p.Liquidity, roundUp)
	case p.Pool.TickCurrent < p.TickUpper:
		return sqrtprice.GetAmount0Delta(p.Pool.SqrtRatioX96, sqrtUpper, p.Liquidity, roundUp)
	default:
		return new(big.Int), nil
	}
}

func (p *Position) amount1(roundUp bool) (*big.Int, error) {
	sqrtLower, sqrtUpper, err := rangeSqrtRatios(p.TickLower, p.TickUpper)
	if err != nil {
		return nil, err
	}

	switch {
	case p.Pool.TickCurrent < p.TickLower:
		return new(big.Int), nil
	case p.Pool.TickCurrent < p.TickUpper:
		return sqrtprice.GetAmount1Delta(sqrtLower, p.Pool.SqrtRatioX96, p.Liquidity, roundUp)
	default:
		return sqrtprice.GetAmount1Delta(sqrtLower, sqrtUpper, p.Liquidity, roundUp)
	}
}

// checkRange defends the composer against ranges the caller should already
// have rejected.
func checkRange(pool *Pool, tickLower, tickUpper int) error {
	if tickLower >= tickUpper {
		return ErrInvalidRange
	}
	if tickLower < tickmath.MinTick || tickUpper > tickmath.MaxTick {
		return ErrInvalidRange
	}
	spacing := pool.TickSpacing()
	if tickLower%spacing != 0 || tickUpper%spacing != 0 {
		return ErrInvalidRange
	}
	return nil
}

func rangeSqrtRatios(tickLower, tickUpper int) (*big.Int, *big.Int, error) {
	sqrtLower, err := tickmath.GetSqrtRatioAtTick(tickLower)
	if err != nil {
		return nil, nil, err
	}
	sqrtUpper, err := tickmath.GetSqrtRatioAtTick(tickUpper)
	if err != nil {
		return nil, nil, err
	}
	return sqrtLower, sqrtUpper, nil
}

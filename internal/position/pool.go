// Package position models pool snapshots and liquidity positions and
// composes the tick, sqrt-price, and amount arithmetic into the values a
// mint or withdrawal needs.
package position

import (
	"errors"
	"math/big"

	"positionScope/internal/entity"
	"positionScope/internal/tickmath"
)

var (
	// ErrInvalidRange is returned when tickLower is not below tickUpper or a
	// tick is not aligned to the pool's spacing.
	ErrInvalidRange = errors.New("invalid tick range")
	// ErrPriceBounds is returned when a pool's tick disagrees with its sqrt
	// ratio.
	ErrPriceBounds = errors.New("sqrt ratio outside tick bounds")
	// ErrUnsupportedFee is returned for a fee amount with no known spacing.
	ErrUnsupportedFee = errors.New("unsupported fee amount")
)

// Pool is an immutable snapshot of a concentrated-liquidity pool: sorted
// token pair, fee tier, and the current sqrt price, in-range liquidity, and
// tick read from chain. A fresh read constructs a fresh Pool.
type Pool struct {
	Token0       entity.Token
	Token1       entity.Token
	Fee          tickmath.FeeAmount
	SqrtRatioX96 *big.Int
	Liquidity    *big.Int
	TickCurrent  int
}

// NewPool validates and builds a pool snapshot. Tokens are reordered so
// token0 sorts first, and the tick must be the one whose sqrt-ratio range
// contains sqrtRatioX96.
func NewPool(tokenA, tokenB entity.Token, fee tickmath.FeeAmount, sqrtRatioX96, liquidity *big.Int, tickCurrent int) (*Pool, error) {
	if !fee.Valid() {
		return nil, ErrUnsupportedFee
	}

	sorted, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return nil, err
	}
	token0, token1 := tokenA, tokenB
	if !sorted {
		token0, token1 = tokenB, tokenA
	}

	ratioAtTick, err := tickmath.GetSqrtRatioAtTick(tickCurrent)
	if err != nil {
		return nil, err
	}
	if sqrtRatioX96.Cmp(ratioAtTick) < 0 {
		return nil, ErrPriceBounds
	}
	if tickCurrent < tickmath.MaxTick {
		ratioAtNext, err := tickmath.GetSqrtRatioAtTick(tickCurrent + 1)
		if err != nil {
			return nil, err
		}
		if sqrtRatioX96.Cmp(ratioAtNext) >= 0 {
			return nil, ErrPriceBounds
		}
	}

	return &Pool{
		Token0:       token0,
		Token1:       token1,
		Fee:          fee,
		SqrtRatioX96: new(big.Int).Set(sqrtRatioX96),
		Liquidity:    new(big.Int).Set(liquidity),
		TickCurrent:  tickCurrent,
	}, nil
}

// TickSpacing returns the spacing of the pool's fee tier.
func (p *Pool) TickSpacing() int { return tickmath.TickSpacings[p.Fee] }

// Token0Price returns the price of token0 in terms of token1.
func (p *Pool) Token0Price() (*entity.Price, error) {
	ratioX192 := new(big.Int).Mul(p.SqrtRatioX96, p.SqrtRatioX96)
	return entity.NewPrice(p.Token0, p.Token1, q192, ratioX192)
}

// Token1Price returns the price of token1 in terms of token0.
func (p *Pool) Token1Price() (*entity.Price, error) {
	ratioX192 := new(big.Int).Mul(p.SqrtRatioX96, p.SqrtRatioX96)
	return entity.NewPrice(p.Token1, p.Token0, ratioX192, q192)
}

// InvolvesToken reports whether the token is one of the pool's pair.
func (p *Pool) InvolvesToken(token entity.Token) bool {
	return p.Token0.Equal(token) || p.Token1.Equal(token)
}

var q192 = new(big.Int).Lsh(big.NewInt(1), 192)

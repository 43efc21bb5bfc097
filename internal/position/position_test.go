package position

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad big int literal %q", s)
	return n
}

func TestFromAmount0InRange(t *testing.T) {
	pool := testPool(t)
	amount0 := mustBig(t, "1000000000000000000")

	pos, err := FromAmount0(pool, -6000, 6000, amount0, true)
	require.NoError(t, err)
	require.Equal(t, "3858461333086758420", pos.Liquidity.String())

	// Withdrawal rounding gives back at most the deposit, short by no more
	// than one smallest unit.
	got0, err := pos.Amount0()
	require.NoError(t, err)
	require.Equal(t, "999999999999999999", got0.String())

	got1, err := pos.Amount1()
	require.NoError(t, err)
	require.Equal(t, "999999999999999999", got1.String())
}

func TestFromAmount0FastPathNeverExceedsPrecise(t *testing.T) {
	pool := testPool(t)
	amount0 := mustBig(t, "1000000000000000000")

	precise, err := FromAmount0(pool, -6000, 6000, amount0, true)
	require.NoError(t, err)
	fast, err := FromAmount0(pool, -6000, 6000, amount0, false)
	require.NoError(t, err)
	require.LessOrEqual(t, fast.Liquidity.Cmp(precise.Liquidity), 0)
}

func TestFromAmount0AboveRangeIsZero(t *testing.T) {
	pool := testPool(t)

	pos, err := FromAmount0(pool, -120, -60, mustBig(t, "1000000000000000000"), true)
	require.NoError(t, err)
	require.Zero(t, pos.Liquidity.Sign(), "token0 buys no liquidity at or above the upper bound")

	amount0, err := pos.Amount0()
	require.NoError(t, err)
	require.Zero(t, amount0.Sign())
}

func TestFromAmount1BelowRangeIsZero(t *testing.T) {
	pool := testPool(t)

	pos, err := FromAmount1(pool, 60, 120, big.NewInt(1000000))
	require.NoError(t, err)
	require.Zero(t, pos.Liquidity.Sign(), "token1 buys no liquidity at or below the lower bound")
}

func TestFromAmount1InRange(t *testing.T) {
	pool := testPool(t)

	pos, err := FromAmount1(pool, -6000, 6000, big.NewInt(1000000))
	require.NoError(t, err)
	require.Equal(t, "3858461", pos.Liquidity.String())

	got1, err := pos.Amount1()
	require.NoError(t, err)
	require.LessOrEqual(t, got1.Cmp(big.NewInt(1000000)), 0)
}

func TestFromAmount1AboveRangeUsesFullSpan(t *testing.T) {
	pool := testPool(t)

	pos, err := FromAmount1(pool, -6120, -60, big.NewInt(1000000))
	require.NoError(t, err)
	require.Positive(t, pos.Liquidity.Sign())

	// An all-token1 range needs no token0 at all.
	amount0, err := pos.Amount0()
	require.NoError(t, err)
	require.Zero(t, amount0.Sign())

	mint0, mint1, err := pos.MintAmounts()
	require.NoError(t, err)
	require.Zero(t, mint0.Sign())
	require.Positive(t, mint1.Sign())
}

func TestFromAmountsLimitingSide(t *testing.T) {
	pool := testPool(t)
	amount0 := mustBig(t, "1000000000000000000")
	amount1 := big.NewInt(2000000)

	pos, err := FromAmounts(pool, -6000, 6000, amount0, amount1, true)
	require.NoError(t, err)
	require.Equal(t, "7716922", pos.Liquidity.String())

	only0, err := FromAmount0(pool, -6000, 6000, amount0, true)
	require.NoError(t, err)
	only1, err := FromAmount1(pool, -6000, 6000, amount1)
	require.NoError(t, err)
	require.LessOrEqual(t, pos.Liquidity.Cmp(only0.Liquidity), 0)
	require.LessOrEqual(t, pos.Liquidity.Cmp(only1.Liquidity), 0)
}

func TestMintAmountsNeverUnderfund(t *testing.T) {
	pool := testPool(t)

	pos, err := FromAmount0(pool, -6000, 6000, mustBig(t, "1000000000000000000"), true)
	require.NoError(t, err)

	mint0, mint1, err := pos.MintAmounts()
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", mint0.String())
	require.Equal(t, "1000000000000000000", mint1.String())

	got0, err := pos.Amount0()
	require.NoError(t, err)
	got1, err := pos.Amount1()
	require.NoError(t, err)
	require.LessOrEqual(t, got0.Cmp(mint0), 0)
	require.LessOrEqual(t, got1.Cmp(mint1), 0)
}

func TestNewRejectsBadRanges(t *testing.T) {
	pool := testPool(t)
	liquidity := big.NewInt(1)

	_, err := New(pool, 6000, -6000, liquidity)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(pool, 0, 0, liquidity)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(pool, -887280, 6000, liquidity)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(pool, -6000, 887280, liquidity)
	require.ErrorIs(t, err, ErrInvalidRange)

	// Not aligned to the fee tier's spacing of 60.
	_, err = New(pool, -30, 6000, liquidity)
	require.ErrorIs(t, err, ErrInvalidRange)
}

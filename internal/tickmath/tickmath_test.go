package tickmath

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSqrtRatioAtTickKnownValues(t *testing.T) {
	cases := []struct {
		tick int
		want string
	}{
		{0, "79228162514264337593543950336"}, // 2^96
		{1, "79232123823359799118286999568"},
		{-1, "79224201403219477170569942574"},
		{60, "79466191966197645195421774833"},
		{-60, "78990846045029531151608375686"},
		{6000, "106945228894416644761163377414"},
		{-6000, "58694546734607936014596754229"},
		{MinTick, "4295128739"},
		{MinTick + 1, "4295343490"},
		{MaxTick - 1, "1461373636630004318706518188784493106690254656249"},
		{MaxTick, "1461446703485210103287273052203988822378723970342"},
	}
	for _, tc := range cases {
		got, err := GetSqrtRatioAtTick(tc.tick)
		require.NoError(t, err, "tick %d", tc.tick)
		require.Equal(t, tc.want, got.String(), "tick %d", tc.tick)
	}
}

func TestGetSqrtRatioAtTickBounds(t *testing.T) {
	_, err := GetSqrtRatioAtTick(MinTick - 1)
	require.ErrorIs(t, err, ErrTickOutOfBounds)
	_, err = GetSqrtRatioAtTick(MaxTick + 1)
	require.ErrorIs(t, err, ErrTickOutOfBounds)

	lo, err := GetSqrtRatioAtTick(MinTick)
	require.NoError(t, err)
	require.Equal(t, 0, lo.Cmp(MinSqrtRatio))

	hi, err := GetSqrtRatioAtTick(MaxTick)
	require.NoError(t, err)
	require.Equal(t, 0, hi.Cmp(MaxSqrtRatio))
}

func TestGetSqrtRatioAtTickMonotonic(t *testing.T) {
	for _, tick := range []int{MinTick, -500000, -6000, -60, -1, 0, 1, 60, 6000, 500000, MaxTick - 1} {
		a, err := GetSqrtRatioAtTick(tick)
		require.NoError(t, err)
		b, err := GetSqrtRatioAtTick(tick + 1)
		require.NoError(t, err)
		require.Negative(t, a.Cmp(b), "ratio must grow from tick %d to %d", tick, tick+1)
	}
}

func TestGetTickAtSqrtRatioKnownValues(t *testing.T) {
	q96 := new(big.Int).Lsh(big.NewInt(1), 96)
	tick, err := GetTickAtSqrtRatio(q96)
	require.NoError(t, err)
	require.Equal(t, 0, tick)

	tick, err = GetTickAtSqrtRatio(MinSqrtRatio)
	require.NoError(t, err)
	require.Equal(t, MinTick, tick)

	belowMax := new(big.Int).Sub(MaxSqrtRatio, big.NewInt(1))
	tick, err = GetTickAtSqrtRatio(belowMax)
	require.NoError(t, err)
	require.Equal(t, MaxTick-1, tick)
}

func TestGetTickAtSqrtRatioBounds(t *testing.T) {
	belowMin := new(big.Int).Sub(MinSqrtRatio, big.NewInt(1))
	_, err := GetTickAtSqrtRatio(belowMin)
	require.ErrorIs(t, err, ErrSqrtRatioOutOfBounds)

	_, err = GetTickAtSqrtRatio(MaxSqrtRatio)
	require.ErrorIs(t, err, ErrSqrtRatioOutOfBounds)
}

func TestTickSqrtRatioRoundTrip(t *testing.T) {
	ticks := []int{MinTick, -738203, -500000, -6000, -60, -1, 0, 1, 60, 6000, 500000, 738203, MaxTick - 1}
	for _, tick := range ticks {
		ratio, err := GetSqrtRatioAtTick(tick)
		require.NoError(t, err)

		got, err := GetTickAtSqrtRatio(ratio)
		require.NoError(t, err)
		require.Equal(t, tick, got, "round trip at tick %d", tick)

		// The tick owns the half-open ratio interval starting at its own
		// sqrt ratio, so one unit below must land on the previous tick.
		if tick > MinTick {
			below := new(big.Int).Sub(ratio, big.NewInt(1))
			got, err = GetTickAtSqrtRatio(below)
			require.NoError(t, err)
			require.Equal(t, tick-1, got, "one below ratio at tick %d", tick)
		}
	}
}

func TestEncodeSqrtRatioX96(t *testing.T) {
	cases := []struct {
		amount1 int64
		amount0 int64
		want    string
	}{
		{1, 1, "79228162514264337593543950336"},
		{100, 1, "792281625142643375935439503360"},
		{1, 100, "7922816251426433759354395033"},
		{111, 333, "45742400955009932534161870629"},
		{333, 111, "137227202865029797602485611888"},
	}
	for _, tc := range cases {
		got, err := EncodeSqrtRatioX96(big.NewInt(tc.amount1), big.NewInt(tc.amount0))
		require.NoError(t, err)
		require.Equal(t, tc.want, got.String(), "%d/%d", tc.amount1, tc.amount0)
	}
}

func TestEncodeSqrtRatioX96ZeroAmount0(t *testing.T) {
	_, err := EncodeSqrtRatioX96(big.NewInt(1), big.NewInt(0))
	require.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestEncodeSqrtRatioX96LargeAmounts(t *testing.T) {
	// 10^18 on both sides cancels back to 2^96.
	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	got, err := EncodeSqrtRatioX96(exp, exp)
	require.NoError(t, err)
	require.Equal(t, "79228162514264337593543950336", got.String())
}

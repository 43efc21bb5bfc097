package tickmath

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

const (
	// MinTick is the lowest tick that getSqrtRatioAtTick accepts.
	MinTick = -887272
	// MaxTick is the highest tick that getSqrtRatioAtTick accepts.
	MaxTick = 887272
)

var (
	// MinSqrtRatio is the sqrt ratio at MinTick, the inclusive lower bound
	// for GetTickAtSqrtRatio.
	MinSqrtRatio = big.NewInt(4295128739)
	// MaxSqrtRatio is the sqrt ratio at MaxTick, the exclusive upper bound
	// for GetTickAtSqrtRatio.
	MaxSqrtRatio = mustBig("1461446703485210103287273052203988822378723970342")

	ErrTickOutOfBounds      = errors.New("tick out of bounds")
	ErrSqrtRatioOutOfBounds = errors.New("sqrt ratio out of bounds")
	ErrDivisionByZero       = errors.New("division by zero")
)

// Q128.128 constants sqrt(1.0001^-2^k) for k = 0..19. Multiplying the
// accumulator by the entry for each set bit of |tick| and shifting back by
// 128 reproduces the reference contract's integer result bit for bit, which
// floating-point exponentiation cannot.
var ratioMagic = [20]*uint256.Int{
	mustU256("0xfffcb933bd6fad37aa2d162d1a594001"),
	mustU256("0xfff97272373d413259a46990580e213a"),
	mustU256("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	mustU256("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	mustU256("0xffcb9843d60f6159c9db58835c926644"),
	mustU256("0xff973b41fa98c081472e6896dfb254c0"),
	mustU256("0xff2ea16466c96a3843ec78b326b52861"),
	mustU256("0xfe5dee046a99a2a811c461f1969c3053"),
	mustU256("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	mustU256("0xf987a7253ac413176f2b074cf7815e54"),
	mustU256("0xf3392b0822b70005940c7a398e4b70f3"),
	mustU256("0xe7159475a2c29b7443b29c7fa6e889d9"),
	mustU256("0xd097f3bdfd2022b8845ad8f792aa5825"),
	mustU256("0xa9f746462d870fdf8a65dc1f90e061e5"),
	mustU256("0x70d869a156d2a1b890bb3df62baf32f7"),
	mustU256("0x31be135f97d08fd981231505542fcfa6"),
	mustU256("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	mustU256("0x5d6af8dedb81196699c329225ee604"),
	mustU256("0x2216e584f5fa1ea926041bedfe98"),
	mustU256("0x48a170391f7dc42444e8fa2"),
}

var (
	oneQ128    = mustU256("0x100000000000000000000000000000000")
	maxUint256 = new(uint256.Int).Not(uint256.NewInt(0))
	maskQ32    = uint256.NewInt(0xffffffff)
	u256One    = uint256.NewInt(1)

	// Fixed-point log constants for GetTickAtSqrtRatio.
	log10001Scale = mustBig("255738958999603826347141")
	tickLowBias   = mustBig("3402992956809132418596140100660247210")
	tickHighBias  = mustBig("291339464771989622907027621153398088495")
)

// GetSqrtRatioAtTick returns sqrt(1.0001^tick) * 2^96 as a Q64.96 value.
// Ticks outside [MinTick, MaxTick] fail with ErrTickOutOfBounds.
func GetSqrtRatioAtTick(tick int) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, ErrTickOutOfBounds
	}

	absTick := tick
	if absTick < 0 {
		absTick = -absTick
	}

	ratio := new(uint256.Int)
	if absTick&1 != 0 {
		ratio.Set(ratioMagic[0])
	} else {
		ratio.Set(oneQ128)
	}
	for k := 1; k < len(ratioMagic); k++ {
		if absTick&(1<<k) != 0 {
			ratio.Mul(ratio, ratioMagic[k]).Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio.Div(maxUint256, ratio)
	}

	// Back to Q64.96, rounding up whenever the discarded bits are nonzero.
	rem := new(uint256.Int).And(ratio, maskQ32)
	ratio.Rsh(ratio, 32)
	if !rem.IsZero() {
		ratio.Add(ratio, u256One)
	}

	return ratio.ToBig(), nil
}

// GetTickAtSqrtRatio returns the greatest tick whose sqrt ratio is less
// than or equal to sqrtRatioX96. Inputs outside
// [MinSqrtRatio, MaxSqrtRatio) fail with ErrSqrtRatioOutOfBounds.
func GetTickAtSqrtRatio(sqrtRatioX96 *big.Int) (int, error) {
	if sqrtRatioX96.Cmp(MinSqrtRatio) < 0 || sqrtRatioX96.Cmp(MaxSqrtRatio) >= 0 {
		return 0, ErrSqrtRatioOutOfBounds
	}

	// Normalize into [2^127, 2^128) and track the integer part of log2.
	sqrtRatioX128 := new(big.Int).Lsh(sqrtRatioX96, 32)
	msb := sqrtRatioX128.BitLen() - 1

	r := new(big.Int)
	if msb >= 128 {
		r.Rsh(sqrtRatioX128, uint(msb-127))
	} else {
		r.Lsh(sqrtRatioX128, uint(127-msb))
	}

	// log2 as a signed Q64.64; fractional bits refined by repeated squaring.
	log2 := new(big.Int).Lsh(big.NewInt(int64(msb-128)), 64)
	for i := 0; i < 14; i++ {
		r.Mul(r, r).Rsh(r, 127)
		f := new(big.Int).Rsh(r, 128)
		log2.Or(log2, new(big.Int).Lsh(f, uint(63-i)))
		r.Rsh(r, uint(f.Uint64()))
	}

	logSqrt10001 := new(big.Int).Mul(log2, log10001Scale)

	tickLow := new(big.Int).Sub(logSqrt10001, tickLowBias)
	tickLow.Rsh(tickLow, 128)
	tickHigh := new(big.Int).Add(logSqrt10001, tickHighBias)
	tickHigh.Rsh(tickHigh, 128)

	low := int(tickLow.Int64())
	high := int(tickHigh.Int64())
	if low == high {
		return low, nil
	}

	// The fixed-point log bounds the answer to two candidates; pick the
	// higher one only if its sqrt ratio does not exceed the input.
	ratioAtHigh, err := GetSqrtRatioAtTick(high)
	if err != nil {
		return 0, err
	}
	if ratioAtHigh.Cmp(sqrtRatioX96) <= 0 {
		return high, nil
	}
	return low, nil
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("tickmath: bad constant " + s)
	}
	return n
}

func mustU256(hex string) *uint256.Int {
	n, err := uint256.FromHex(hex)
	if err != nil {
		panic("tickmath: bad constant " + hex)
	}
	return n
}

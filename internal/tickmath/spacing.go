package tickmath

// FeeAmount identifies a pool fee tier in hundredths of a bip.
type FeeAmount uint32

const (
	FeeLowest FeeAmount = 100
	FeeLow    FeeAmount = 500
	FeeMedium FeeAmount = 3000
	FeeHigh   FeeAmount = 10000
)

// TickSpacings maps each supported fee tier to its tick spacing. Ticks are
// meaningful only at multiples of the spacing.
var TickSpacings = map[FeeAmount]int{
	FeeLowest: 1,
	FeeLow:    10,
	FeeMedium: 60,
	FeeHigh:   200,
}

// Valid reports whether the fee amount is a supported tier.
func (f FeeAmount) Valid() bool {
	_, ok := TickSpacings[f]
	return ok
}

// NearestUsableTick snaps tick to the closest multiple of tickSpacing,
// with ties rounding toward positive infinity. Results outside
// [MinTick, MaxTick] are pulled back in by one spacing step. tickSpacing
// must be positive and tick must be in bounds.
func NearestUsableTick(tick, tickSpacing int) (int, error) {
	if tickSpacing <= 0 {
		return 0, ErrTickOutOfBounds
	}
	if tick < MinTick || tick > MaxTick {
		return 0, ErrTickOutOfBounds
	}

	rounded := roundHalfUp(tick, tickSpacing) * tickSpacing
	if rounded < MinTick {
		rounded += tickSpacing
	} else if rounded > MaxTick {
		rounded -= tickSpacing
	}
	return rounded, nil
}

// roundHalfUp divides tick by spacing rounding the quotient to the nearest
// integer, ties toward positive infinity.
func roundHalfUp(tick, spacing int) int {
	quot := tick / spacing
	rem := tick % spacing
	if rem < 0 {
		quot--
		rem += spacing
	}
	// quot is now the floor; round up when the remainder is at least half.
	if 2*rem >= spacing {
		quot++
	}
	return quot
}

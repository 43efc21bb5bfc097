package tickmath

import "testing"

func TestNearestUsableTick(t *testing.T) {
	cases := []struct {
		name    string
		tick    int
		spacing int
		want    int
	}{
		{"already usable", 6000, 60, 6000},
		{"rounds down", 6001, 60, 6000},
		{"rounds up", 6031, 60, 6060},
		{"tie rounds toward positive", 30, 60, 60},
		{"negative tie rounds toward positive", -30, 60, 0},
		{"negative rounds to nearest", -6932, 60, -6960},
		{"spacing one is identity", -123, 1, -123},
		{"min tick pulls back in", MinTick, 60, -887220},
		{"max tick pulls back in", MaxTick, 60, 887220},
	}
	for _, tc := range cases {
		got, err := NearestUsableTick(tc.tick, tc.spacing)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestNearestUsableTickIdempotent(t *testing.T) {
	for _, spacing := range []int{1, 10, 60, 200} {
		for _, tick := range []int{-887272, -100000, -61, 0, 59, 100000, 887272} {
			once, err := NearestUsableTick(tick, spacing)
			if err != nil {
				t.Fatalf("spacing %d tick %d: %v", spacing, tick, err)
			}
			twice, err := NearestUsableTick(once, spacing)
			if err != nil {
				t.Fatalf("spacing %d tick %d: %v", spacing, once, err)
			}
			if once != twice {
				t.Fatalf("spacing %d: %d re-snapped to %d", spacing, once, twice)
			}
		}
	}
}

func TestNearestUsableTickRejects(t *testing.T) {
	if _, err := NearestUsableTick(0, 0); err == nil {
		t.Fatalf("expected error for zero spacing")
	}
	if _, err := NearestUsableTick(0, -60); err == nil {
		t.Fatalf("expected error for negative spacing")
	}
	if _, err := NearestUsableTick(MinTick-1, 60); err == nil {
		t.Fatalf("expected error below MinTick")
	}
	if _, err := NearestUsableTick(MaxTick+1, 60); err == nil {
		t.Fatalf("expected error above MaxTick")
	}
}

func TestFeeAmountValid(t *testing.T) {
	for _, fee := range []FeeAmount{FeeLowest, FeeLow, FeeMedium, FeeHigh} {
		if !fee.Valid() {
			t.Fatalf("fee %d should be valid", fee)
		}
	}
	if FeeAmount(1234).Valid() {
		t.Fatalf("fee 1234 should not be valid")
	}
}

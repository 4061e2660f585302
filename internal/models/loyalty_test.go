package models

import "testing"

func TestTierForPoints(t *testing.T) {
	cases := []struct {
		points int
		want   LoyaltyTier
	}{
		{0, TierBase},
		{349, TierBase},
		{350, Tier1},
		{849, Tier1},
		{850, Tier2},
		{999, Tier2},
		{1000, TierMax},
		{5000, TierMax},
	}
	for _, tc := range cases {
		if got := TierForPoints(tc.points); got != tc.want {
			t.Fatalf("TierForPoints(%d) = %s, want %s", tc.points, got, tc.want)
		}
	}
}

func TestPrizesForTier(t *testing.T) {
	if n := len(PrizesForTier(TierBase)); n != 0 {
		t.Fatalf("base tier has no prizes, got %d", n)
	}
	if n := len(PrizesForTier(Tier1)); n != 3 {
		t.Fatalf("tier1 has exactly 3 prizes, got %d", n)
	}

	// Callers must not be able to mutate the prize table.
	prizes := PrizesForTier(Tier1)
	prizes[0] = "tampered"
	if PrizesForTier(Tier1)[0] == "tampered" {
		t.Fatalf("prize table must be copy-on-read")
	}
}

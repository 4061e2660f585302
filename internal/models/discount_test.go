package models

import "testing"

func fptr(v float64) *float64 { return &v }

func TestBracketContains(t *testing.T) {
	bounded := Bracket{Min: 0, Max: fptr(99.99), Discount: 5}
	unbounded := Bracket{Min: 100, Discount: 15}

	cases := []struct {
		bracket Bracket
		amount  float64
		want    bool
	}{
		{bounded, 0, true},
		{bounded, 99.99, true},
		{bounded, 100, false},
		{unbounded, 99.99, false},
		{unbounded, 100, true},
		{unbounded, 1e9, true},
	}
	for _, tc := range cases {
		if got := tc.bracket.Contains(tc.amount); got != tc.want {
			t.Fatalf("Contains(%v) on [%v,%v] = %v, want %v", tc.amount, tc.bracket.Min, tc.bracket.Max, got, tc.want)
		}
	}
}

func TestBuildRuleConfigs(t *testing.T) {
	rules := []DiscountRule{
		{OfferID: "SUMMER", Segment: SegmentReseller, MinAmount: 0, MaxAmount: fptr(99.99), DiscountPercent: 5},
		{OfferID: "SUMMER", Segment: SegmentReseller, MinAmount: 100, DiscountPercent: 15},
		{OfferID: "SUMMER", Segment: SegmentDistributor, MinAmount: 0, DiscountPercent: 3},
		{OfferID: "WINTER", Segment: SegmentReseller, MinAmount: 0, DiscountPercent: 8},
	}

	configs := BuildRuleConfigs(rules)
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].OfferID != "SUMMER" || configs[1].OfferID != "WINTER" {
		t.Fatalf("offer order must follow input order: %v, %v", configs[0].OfferID, configs[1].OfferID)
	}

	summer := configs[0]
	if len(summer.Rules[SegmentReseller]) != 2 || len(summer.Rules[SegmentDistributor]) != 1 {
		t.Fatalf("segment grouping wrong: %+v", summer.Rules)
	}
	brackets := summer.Rules[SegmentReseller]
	if brackets[0].Min != 0 || brackets[1].Min != 100 {
		t.Fatalf("bracket order must be preserved: %+v", brackets)
	}
	if brackets[1].Max != nil {
		t.Fatalf("null max means unbounded, got %v", *brackets[1].Max)
	}
}

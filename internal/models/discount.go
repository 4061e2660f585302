package models

import "time"

// DiscountRule is one stored bracket row. Rules are grouped into configs by
// offer id and, within a config, by segment. MaxAmount nil means unbounded.
type DiscountRule struct {
	ID              int64      `db:"id" json:"id"`
	OfferID         string     `db:"offer_id" json:"offerId"`
	Segment         Segment    `db:"segment" json:"segment"`
	MinAmount       float64    `db:"min_amount" json:"min"`
	MaxAmount       *float64   `db:"max_amount" json:"max"`
	DiscountPercent float64    `db:"discount_percent" json:"discount"`
	ValidUntil      *time.Time `db:"valid_until" json:"validUntil"`
}

// Bracket is one amount range of a rule config, in evaluation form.
type Bracket struct {
	Min        float64    `json:"min"`
	Max        *float64   `json:"max"`
	Discount   float64    `json:"discount"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
}

// Contains reports whether amount falls inside [Min, Max]; a nil Max is
// treated as unbounded.
func (b Bracket) Contains(amount float64) bool {
	if amount < b.Min {
		return false
	}
	return b.Max == nil || amount <= *b.Max
}

// RuleConfig is the derived per-offer view of the rule table: brackets per
// segment, ordered ascending by Min. It is recomputed from the stored rows on
// each pricing request and never persisted.
type RuleConfig struct {
	OfferID string               `json:"id"`
	Rules   map[Segment][]Bracket `json:"rules"`
}

// BuildRuleConfigs groups stored rules into configs keyed by offer id.
// Input rows are expected ordered by (offer_id, segment, min_amount), which is
// how the repository lists them; the bracket order is preserved.
func BuildRuleConfigs(rules []DiscountRule) []RuleConfig {
	byOffer := make(map[string]*RuleConfig)
	var order []string
	for _, r := range rules {
		cfg, ok := byOffer[r.OfferID]
		if !ok {
			cfg = &RuleConfig{OfferID: r.OfferID, Rules: make(map[Segment][]Bracket)}
			byOffer[r.OfferID] = cfg
			order = append(order, r.OfferID)
		}
		cfg.Rules[r.Segment] = append(cfg.Rules[r.Segment], Bracket{
			Min:        r.MinAmount,
			Max:        r.MaxAmount,
			Discount:   r.DiscountPercent,
			ValidUntil: r.ValidUntil,
		})
	}

	configs := make([]RuleConfig, 0, len(order))
	for _, id := range order {
		configs = append(configs, *byOffer[id])
	}
	return configs
}

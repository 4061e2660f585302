package models

import "time"

// ActionCode identifies a loyalty action with a fixed point value.
type ActionCode string

const (
	ActionFollowSocial    ActionCode = "FOLLOW_SOCIAL"
	ActionAddBroadcast    ActionCode = "ADD_BROADCAST"
	ActionOrderReman      ActionCode = "ORDER_REMAN"
	ActionReachAvgRevenue ActionCode = "REACH_AVG_REVENUE"
	ActionUpsellRevenue   ActionCode = "UPSELL_REVENUE"
	ActionBringNewCompany ActionCode = "BRING_NEW_COMPANY"
)

// ActionPoints maps every known action code to its point value. Codes outside
// this map are rejected before reaching the ledger.
var ActionPoints = map[ActionCode]int{
	ActionFollowSocial:    5,
	ActionAddBroadcast:    50,
	ActionOrderReman:      100,
	ActionReachAvgRevenue: 200,
	ActionUpsellRevenue:   500,
	ActionBringNewCompany: 1000,
}

// PromoLedgerEntry is one append-only loyalty grant. Entries are never
// mutated or deleted.
type PromoLedgerEntry struct {
	ID         int64      `db:"id" json:"id"`
	ClientID   int64      `db:"client_id" json:"clientId"`
	ActionCode ActionCode `db:"action_code" json:"actionCode"`
	Points     int        `db:"points" json:"points"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// LoyaltyTier is the derived loyalty status for a point total.
type LoyaltyTier string

const (
	TierBase LoyaltyTier = "base"
	Tier1    LoyaltyTier = "tier1"
	Tier2    LoyaltyTier = "tier2"
	TierMax  LoyaltyTier = "max"
)

// TierForPoints maps accumulated points to a tier. Thresholds are inclusive;
// the highest matching tier wins.
func TierForPoints(points int) LoyaltyTier {
	switch {
	case points >= 1000:
		return TierMax
	case points >= 850:
		return Tier2
	case points >= 350:
		return Tier1
	default:
		return TierBase
	}
}

// tierPrizes holds the fixed, ordered prize list per tier.
var tierPrizes = map[LoyaltyTier][]string{
	TierBase: {},
	Tier1: {
		"Branded merchandising kit",
		"5% voucher on the next order",
		"Priority phone support for one quarter",
	},
	Tier2: {
		"Branded merchandising kit",
		"10% voucher on the next order",
		"Priority phone support for one quarter",
		"Co-marketing feature on the newsletter",
	},
	TierMax: {
		"Branded merchandising kit",
		"15% voucher on the next order",
		"Priority phone support for one year",
		"Co-marketing feature on the newsletter",
		"Invitation to the annual partner event",
	},
}

// PrizesForTier returns the prize list gated by the tier. The slice is a copy
// so callers cannot mutate the table.
func PrizesForTier(tier LoyaltyTier) []string {
	prizes := tierPrizes[tier]
	out := make([]string, len(prizes))
	copy(out, prizes)
	return out
}

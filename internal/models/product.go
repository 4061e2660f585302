package models

import "time"

// ProductStatus enumerates the product lifecycle states.
type ProductStatus string

const (
	ProductStatusActive      ProductStatus = "active"
	ProductStatusUnavailable ProductStatus = "unavailable"
)

// Product is a catalog record keyed by SKU. Per-segment list prices are
// nullable: a missing segment price falls back to BasePrice at pricing time.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	SKU                    string        `db:"sku" json:"sku"`
	Name                   string        `db:"name" json:"name"`
	DescriptionHTML        string        `db:"description_html" json:"descHtml"`
	Unit                   string        `db:"unit" json:"unit"`
	BasePrice              float64       `db:"base_price" json:"basePrice"`
	PriceDistributor       *float64      `db:"price_distributor" json:"priceDistributor"`
	PriceReseller          *float64      `db:"price_reseller" json:"priceReseller"`
	PriceReseller10        *float64      `db:"price_reseller10" json:"priceReseller10"`
	MarkupDistributor      *float64      `db:"markup_distributor" json:"markupDistributor,omitempty"`
	MarkupReseller         *float64      `db:"markup_reseller" json:"markupReseller,omitempty"`
	MarkupReseller10       *float64      `db:"markup_reseller10" json:"markupReseller10,omitempty"`
	DiscountDistributorPct float64       `db:"discount_distributor_pct" json:"discountDistributorPct"`
	DiscountResellerPct    float64       `db:"discount_reseller_pct" json:"discountResellerPct"`
	DiscountReseller10Pct  float64       `db:"discount_reseller10_pct" json:"discountReseller10Pct"`
	StockQty               int           `db:"stock_qty" json:"stockQty"`
	Status                 ProductStatus `db:"status" json:"status"`
	ImageHD                *string       `db:"image_hd" json:"imageHd"`
	ImageThumb             *string       `db:"image_thumb" json:"imageThumb"`
	Gallery                StringList    `db:"gallery" json:"gallery"`
	Extra                  JSONMap       `db:"extra" json:"extra"`
	CreatedAt              time.Time     `db:"created_at" json:"-"`
	UpdatedAt              time.Time     `db:"updated_at" json:"updatedAt"`
}

// PriceForSegment returns the explicit list price for the requested segment,
// falling back to the base price when the segment has no explicit price or
// the segment is unknown.
func (p *Product) PriceForSegment(segment Segment) float64 {
	switch segment {
	case SegmentDistributor:
		if p.PriceDistributor != nil {
			return *p.PriceDistributor
		}
	case SegmentReseller:
		if p.PriceReseller != nil {
			return *p.PriceReseller
		}
	case SegmentReseller10:
		if p.PriceReseller10 != nil {
			return *p.PriceReseller10
		}
	}
	return p.BasePrice
}

// OfferID returns the discount campaign id from the extra attributes,
// or "" when the product is not tied to an offer.
func (p *Product) OfferID() string {
	if p.Extra == nil {
		return ""
	}
	if v, ok := p.Extra["offer_id"].(string); ok {
		return v
	}
	return ""
}

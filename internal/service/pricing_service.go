package service

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// catalogReader is the slice of the product repository the resolver needs.
type catalogReader interface {
	GetBySKU(sku string) (*models.Product, error)
}

// ruleLister is the slice of the discount repository the resolver needs.
type ruleLister interface {
	GetAll() ([]models.DiscountRule, error)
}

// PricingService resolves final prices from the catalog and rule table.
type PricingService struct {
	catalog catalogReader
	rules   ruleLister
}

// NewPricingService constructs a PricingService.
func NewPricingService(catalog catalogReader, rules ruleLister) *PricingService {
	return &PricingService{catalog: catalog, rules: rules}
}

// PriceRequest describes one pricing lookup. When SKU misses the catalog, the
// optional ad-hoc Product payload is priced instead so quotes can be prepared
// before the catalog import lands.
type PriceRequest struct {
	SKU      string          `json:"sku"`
	Product  *models.Product `json:"product,omitempty"`
	Segment  models.Segment  `json:"segment"`
	Quantity int             `json:"quantity"`
}

// PriceQuote is the computed result of a pricing lookup.
type PriceQuote struct {
	SKU             string         `json:"sku"`
	Segment         models.Segment `json:"segment"`
	Quantity        int            `json:"quantity"`
	BasePrice       float64        `json:"basePrice"`
	LineAmount      float64        `json:"lineAmount"`
	DiscountPercent float64        `json:"discountApplied"`
	FinalAmount     float64        `json:"price"`
}

// Resolve computes the final price for (product, segment, quantity). It has no
// side effects and reads a fresh catalog/rule snapshot per call, so it is safe
// to run concurrently with imports.
func (s *PricingService) Resolve(req *PriceRequest) (*PriceQuote, error) {
	product, err := s.loadProduct(req)
	if err != nil {
		return nil, err
	}

	segment := req.Segment
	if !segment.Valid() {
		segment = models.DefaultSegment
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	basePrice := product.PriceForSegment(segment)
	lineAmount := basePrice * float64(quantity)

	discount, err := s.discountFor(product.OfferID(), segment, lineAmount)
	if err != nil {
		return nil, err
	}

	return &PriceQuote{
		SKU:             product.SKU,
		Segment:         segment,
		Quantity:        req.Quantity,
		BasePrice:       basePrice,
		LineAmount:      lineAmount,
		DiscountPercent: discount,
		FinalAmount:     lineAmount * (1 - discount/100),
	}, nil
}

// loadProduct fetches the catalog row for the SKU, or falls back to the
// caller-supplied ad-hoc payload for pre-catalog quotes.
func (s *PricingService) loadProduct(req *PriceRequest) (*models.Product, error) {
	if req.SKU != "" {
		product, err := s.catalog.GetBySKU(req.SKU)
		if err == nil {
			return product, nil
		}
		if err != sql.ErrNoRows {
			return nil, err
		}
	}

	if req.Product != nil {
		log.Debug().
			Str("sku", req.Product.SKU).
			Msg("pricing ad-hoc product payload, not in catalog")
		return req.Product, nil
	}

	return nil, utils.ErrProductNotFound
}

// discountFor scans rule configs for the offer and returns the percentage of
// the first bracket containing amount. Configs are scanned until a non-zero
// discount is found; rules never stack.
func (s *PricingService) discountFor(offerID string, segment models.Segment, amount float64) (float64, error) {
	if offerID == "" {
		return 0, nil
	}

	rules, err := s.rules.GetAll()
	if err != nil {
		return 0, err
	}

	for _, cfg := range models.BuildRuleConfigs(rules) {
		if cfg.OfferID != offerID {
			continue
		}
		for _, bracket := range cfg.Rules[segment] {
			if bracket.Contains(amount) {
				if bracket.Discount != 0 {
					return bracket.Discount, nil
				}
				break
			}
		}
	}
	return 0, nil
}

package service

import (
	"database/sql"
	"testing"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/utils"
)

type fakeCatalog map[string]*models.Product

func (f fakeCatalog) GetBySKU(sku string) (*models.Product, error) {
	if p, ok := f[sku]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

type fakeRules []models.DiscountRule

func (f fakeRules) GetAll() ([]models.DiscountRule, error) {
	return f, nil
}

func fptr(v float64) *float64 { return &v }

func testProduct(offerID string) *models.Product {
	p := &models.Product{
		SKU:           "ART-001",
		Name:          "Cartridge",
		BasePrice:     10,
		PriceReseller: fptr(8),
		Status:        models.ProductStatusActive,
		Extra:         models.JSONMap{},
	}
	if offerID != "" {
		p.Extra["offer_id"] = offerID
	}
	return p
}

func bracketRules(offerID string, segment models.Segment) []models.DiscountRule {
	return []models.DiscountRule{
		{OfferID: offerID, Segment: segment, MinAmount: 0, MaxAmount: fptr(99.99), DiscountPercent: 5},
		{OfferID: offerID, Segment: segment, MinAmount: 100, MaxAmount: nil, DiscountPercent: 15},
	}
}

func TestResolveSegmentFallback(t *testing.T) {
	svc := NewPricingService(fakeCatalog{"ART-001": testProduct("")}, fakeRules{})

	// Explicit reseller price.
	quote, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.BasePrice != 8 {
		t.Fatalf("expected reseller price 8, got %v", quote.BasePrice)
	}

	// No distributor price stored, falls back to base.
	quote, err = svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentDistributor, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.BasePrice != 10 {
		t.Fatalf("expected base price fallback 10, got %v", quote.BasePrice)
	}
}

func TestResolveQuantityFloor(t *testing.T) {
	svc := NewPricingService(fakeCatalog{"ART-001": testProduct("")}, fakeRules{})

	zero, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	one, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zero.FinalAmount != one.FinalAmount || zero.LineAmount != one.LineAmount {
		t.Fatalf("quantity 0 should price like quantity 1: %v vs %v", zero.FinalAmount, one.FinalAmount)
	}
}

func TestResolveBracketBoundaries(t *testing.T) {
	product := testProduct("SUMMER")
	product.PriceReseller = fptr(1) // lineAmount == quantity
	catalog := fakeCatalog{"ART-001": product}
	rules := fakeRules(bracketRules("SUMMER", models.SegmentReseller))
	svc := NewPricingService(catalog, rules)

	cases := []struct {
		name     string
		quantity int
		discount float64
	}{
		{"inside first bracket", 50, 5},
		{"boundary of second bracket", 100, 15},
		{"deep in unbounded bracket", 100000, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: tc.quantity})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.DiscountPercent != tc.discount {
				t.Fatalf("expected %v%% discount, got %v%%", tc.discount, quote.DiscountPercent)
			}
			want := quote.LineAmount * (1 - tc.discount/100)
			if quote.FinalAmount != want {
				t.Fatalf("expected final %v, got %v", want, quote.FinalAmount)
			}
		})
	}
}

func TestResolveFractionalBoundary(t *testing.T) {
	product := testProduct("SUMMER")
	product.PriceReseller = fptr(99.99)
	svc := NewPricingService(
		fakeCatalog{"ART-001": product},
		fakeRules(bracketRules("SUMMER", models.SegmentReseller)),
	)

	quote, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.DiscountPercent != 5 {
		t.Fatalf("99.99 should land in the first bracket, got %v%%", quote.DiscountPercent)
	}
}

func TestResolveNoOffer(t *testing.T) {
	svc := NewPricingService(
		fakeCatalog{"ART-001": testProduct("")},
		fakeRules(bracketRules("SUMMER", models.SegmentReseller)),
	)

	quote, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.DiscountPercent != 0 {
		t.Fatalf("product without offer should get no discount, got %v%%", quote.DiscountPercent)
	}
}

func TestResolveZeroDiscountBracketDoesNotStack(t *testing.T) {
	product := testProduct("SUMMER")
	product.PriceReseller = fptr(1)
	rules := fakeRules{
		{OfferID: "SUMMER", Segment: models.SegmentReseller, MinAmount: 0, MaxAmount: fptr(50), DiscountPercent: 0},
		{OfferID: "SUMMER", Segment: models.SegmentReseller, MinAmount: 51, MaxAmount: nil, DiscountPercent: 20},
	}
	svc := NewPricingService(fakeCatalog{"ART-001": product}, rules)

	quote, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: models.SegmentReseller, Quantity: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.DiscountPercent != 0 {
		t.Fatalf("first matching bracket wins even at 0%%, got %v%%", quote.DiscountPercent)
	}
}

func TestResolveAdHocProduct(t *testing.T) {
	svc := NewPricingService(fakeCatalog{}, fakeRules{})

	adhoc := &models.Product{SKU: "DRAFT", BasePrice: 42}
	quote, err := svc.Resolve(&PriceRequest{SKU: "DRAFT", Product: adhoc, Segment: models.SegmentReseller, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.LineAmount != 84 {
		t.Fatalf("expected ad-hoc line amount 84, got %v", quote.LineAmount)
	}
}

func TestResolveUnknownSKU(t *testing.T) {
	svc := NewPricingService(fakeCatalog{}, fakeRules{})

	if _, err := svc.Resolve(&PriceRequest{SKU: "MISSING", Segment: models.SegmentReseller, Quantity: 1}); err != utils.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestResolveUnknownSegmentUsesDefault(t *testing.T) {
	product := testProduct("")
	product.PriceReseller10 = fptr(7)
	svc := NewPricingService(fakeCatalog{"ART-001": product}, fakeRules{})

	quote, err := svc.Resolve(&PriceRequest{SKU: "ART-001", Segment: "wholesale", Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Segment != models.DefaultSegment {
		t.Fatalf("expected default segment, got %s", quote.Segment)
	}
	if quote.BasePrice != 7 {
		t.Fatalf("expected reseller10 price 7, got %v", quote.BasePrice)
	}
}

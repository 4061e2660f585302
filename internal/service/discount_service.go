package service

import (
	"sort"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// discountStore is the slice of the discount repository this service needs.
type discountStore interface {
	GetAll() ([]models.DiscountRule, error)
	GetByOffer(offerID string) ([]models.DiscountRule, error)
	ReplaceForOfferSegment(offerID string, segment models.Segment, brackets []models.Bracket) error
}

// DiscountService manages the bracketed discount rule table.
type DiscountService struct {
	repo discountStore
}

// NewDiscountService constructs a DiscountService.
func NewDiscountService(repo discountStore) *DiscountService {
	return &DiscountService{repo: repo}
}

// RuleConfigs returns the full rule table grouped by offer.
func (s *DiscountService) RuleConfigs() ([]models.RuleConfig, error) {
	rules, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return models.BuildRuleConfigs(rules), nil
}

// OfferConfig returns a single offer's config, or nil when the offer has no
// rules.
func (s *DiscountService) OfferConfig(offerID string) (*models.RuleConfig, error) {
	rules, err := s.repo.GetByOffer(offerID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	configs := models.BuildRuleConfigs(rules)
	return &configs[0], nil
}

// SaveRules replaces the bracket sets of an offer, one segment at a time.
// Each segment's brackets are sorted ascending by min and validated for
// overlap before anything is written; an overlapping pair rejects the whole
// request.
func (s *DiscountService) SaveRules(offerID string, rulesBySegment map[models.Segment][]models.Bracket) error {
	if offerID == "" {
		return utils.ErrMissingOfferID
	}

	sorted := make(map[models.Segment][]models.Bracket, len(rulesBySegment))
	for segment, brackets := range rulesBySegment {
		if !segment.Valid() {
			return utils.ErrInvalidSegment
		}

		ordered := make([]models.Bracket, len(brackets))
		copy(ordered, brackets)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Min < ordered[j].Min })

		if overlaps(ordered) {
			return utils.ErrOverlappingBrackets
		}
		sorted[segment] = ordered
	}

	for segment, brackets := range sorted {
		if err := s.repo.ReplaceForOfferSegment(offerID, segment, brackets); err != nil {
			return err
		}
	}
	return nil
}

// overlaps reports whether any two adjacent brackets in an ascending-min list
// share amounts. A nil Max means unbounded, so anything after it overlaps.
func overlaps(brackets []models.Bracket) bool {
	for i := 1; i < len(brackets); i++ {
		prev := brackets[i-1]
		if prev.Max == nil {
			return true
		}
		if brackets[i].Min <= *prev.Max {
			return true
		}
	}
	return false
}

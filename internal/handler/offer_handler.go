package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// OfferHandler exposes the discount rule table.
type OfferHandler struct {
	discountService *service.DiscountService
}

// NewOfferHandler constructs an OfferHandler.
func NewOfferHandler(discountService *service.DiscountService) *OfferHandler {
	return &OfferHandler{discountService: discountService}
}

// GetOffers lists every offer config with its brackets per segment.
func (h *OfferHandler) GetOffers(c *gin.Context) {
	configs, err := h.discountService.RuleConfigs()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load offers")
		return
	}
	if configs == nil {
		configs = []models.RuleConfig{}
	}
	utils.Success(c, 200, "Offers retrieved", gin.H{"offers": configs})
}

// GetOffer returns one offer's config.
func (h *OfferHandler) GetOffer(c *gin.Context) {
	cfg, err := h.discountService.OfferConfig(c.Param("offerId"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load offer")
		return
	}
	if cfg == nil {
		utils.Error(c, 404, "NOT_FOUND", "Offer not found")
		return
	}
	utils.Success(c, 200, "Offer retrieved", cfg)
}

type saveOfferRequest struct {
	OfferID string                             `json:"offerId" binding:"required"`
	Rules   map[models.Segment][]models.Bracket `json:"rules" binding:"required"`
}

// SaveOffer replaces an offer's bracket sets per segment. Overlapping
// brackets reject the whole request; nothing is written.
func (h *OfferHandler) SaveOffer(c *gin.Context) {
	var req saveOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "offerId and rules are required")
		return
	}

	if err := h.discountService.SaveRules(req.OfferID, req.Rules); err != nil {
		switch err {
		case utils.ErrOverlappingBrackets:
			utils.Error(c, 422, "OVERLAPPING_BRACKETS", "Brackets for a segment must not overlap")
		case utils.ErrInvalidSegment:
			utils.Error(c, 400, "INVALID_SEGMENT", "Unknown segment in rules")
		case utils.ErrMissingOfferID:
			utils.Error(c, 400, "INVALID_REQUEST", "offerId is required")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save offer")
		}
		return
	}

	cfg, err := h.discountService.OfferConfig(req.OfferID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load offer")
		return
	}
	utils.Success(c, 200, "Offer saved", cfg)
}

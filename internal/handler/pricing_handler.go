package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// PricingHandler exposes the price resolver.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler constructs a PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// ResolvePrice computes the final price for a (product, segment, quantity)
// request. Unknown SKUs are accepted when an ad-hoc product payload is
// supplied, supporting pre-catalog quotes.
func (h *PricingHandler) ResolvePrice(c *gin.Context) {
	var req service.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Malformed pricing request")
		return
	}
	if req.SKU == "" && req.Product == nil {
		utils.Error(c, 400, "INVALID_REQUEST", "sku or product payload is required")
		return
	}

	quote, err := h.pricingService.Resolve(&req)
	if err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Pricing failed")
		return
	}

	utils.Success(c, 200, "Price resolved", quote)
}

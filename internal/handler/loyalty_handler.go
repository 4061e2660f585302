package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// LoyaltyHandler exposes point grants and loyalty summaries.
type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

// NewLoyaltyHandler constructs a LoyaltyHandler.
func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

type grantPointsRequest struct {
	ClientID   int64             `json:"clientId" binding:"required"`
	ActionCode models.ActionCode `json:"actionCode" binding:"required"`
}

// GrantPoints awards the fixed point value of an action to a client.
func (h *LoyaltyHandler) GrantPoints(c *gin.Context) {
	var req grantPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "clientId and actionCode are required")
		return
	}

	outcome, err := h.loyaltyService.Grant(req.ClientID, req.ActionCode)
	if err != nil {
		switch err {
		case utils.ErrUnknownActionCode:
			utils.Error(c, 400, "UNKNOWN_ACTION", "Unknown action code")
		case utils.ErrClientNotFound:
			utils.Error(c, 404, "NOT_FOUND", "Client not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Point grant failed")
		}
		return
	}
	utils.Success(c, 200, "Points granted", outcome)
}

// GetSummary returns a client's loyalty state: points, tier, prizes, ticket,
// and ledger newest-first.
func (h *LoyaltyHandler) GetSummary(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Query("clientId"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "clientId is required")
		return
	}

	summary, err := h.loyaltyService.GetSummary(clientID)
	if err != nil {
		if err == utils.ErrClientNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Client not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load loyalty summary")
		return
	}
	utils.Success(c, 200, "Loyalty summary retrieved", summary)
}

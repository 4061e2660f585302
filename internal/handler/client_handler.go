package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// ClientHandler exposes the admin client registry endpoints.
type ClientHandler struct {
	clientService *service.ClientService
	importService *service.ClientImportService
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(clientService *service.ClientService, importService *service.ClientImportService) *ClientHandler {
	return &ClientHandler{clientService: clientService, importService: importService}
}

// GetClients lists clients newest-first with optional filters.
func (h *ClientHandler) GetClients(c *gin.Context) {
	segment := c.Query("segment")
	promoOnly := c.Query("promo") == "true"

	clients, err := h.clientService.List(segment, promoOnly)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load clients")
		return
	}
	utils.Success(c, 200, "Clients retrieved", gin.H{"clients": clients})
}

// GetClient returns a single client.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid client id")
		return
	}

	client, err := h.clientService.Get(id)
	if err != nil {
		if err == utils.ErrClientNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Client not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load client")
		return
	}
	utils.Success(c, 200, "Client retrieved", gin.H{"client": client})
}

// CreateClient inserts a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "companyName is required")
		return
	}

	client, err := h.clientService.Create(&req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create client")
		return
	}
	utils.Success(c, 201, "Client created", gin.H{"client": client})
}

// UpdateClient overwrites a client's profile fields.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid client id")
		return
	}

	var req service.SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "companyName is required")
		return
	}

	client, err := h.clientService.Update(id, &req)
	if err != nil {
		if err == utils.ErrClientNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Client not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update client")
		return
	}
	utils.Success(c, 200, "Client updated", gin.H{"client": client})
}

// DeleteClient removes a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid client id")
		return
	}

	if err := h.clientService.Delete(id); err != nil {
		if err == utils.ErrClientNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Client not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete client")
		return
	}
	utils.Success(c, 200, "Client deleted", nil)
}

// ImportPromoClients ingests the promo-adherent signup workbook uploaded as
// multipart.
func (h *ClientHandler) ImportPromoClients(c *gin.Context) {
	data, _, ok := readUpload(c, "file")
	if !ok {
		return
	}

	result, err := h.importService.Import(data)
	if err != nil {
		respondIngestError(c, err)
		return
	}
	utils.Success(c, 200, "Clients imported", result)
}

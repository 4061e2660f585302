package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/ingest"
	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// OrderHandler exposes account order history and the admin order import.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetAccountOrders returns the order history of the logged-in account,
// filtered to its own email unless the session is an admin.
func (h *OrderHandler) GetAccountOrders(c *gin.Context) {
	filter := &models.OrderFilter{
		CustomerEmail: c.GetString("email"),
		Status:        c.Query("status"),
		Cause:         c.Query("cause"),
		IncludeAll:    c.GetBool("is_admin"),
	}
	if v := c.Query("date_from"); v != "" {
		filter.DateFrom = ingest.ParseDate(v)
	}
	if v := c.Query("date_to"); v != "" {
		filter.DateTo = ingest.ParseDate(v)
	}

	orders, err := h.orderService.List(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved", gin.H{"orders": orders})
}

// ImportOrders ingests a management-system order export uploaded as
// multipart. CSV and xlsx are both accepted, picked by the file extension.
func (h *OrderHandler) ImportOrders(c *gin.Context) {
	data, fileName, ok := readUpload(c, "file", "orders")
	if !ok {
		return
	}

	result, err := h.orderService.Import(data, fileName)
	if err != nil {
		respondIngestError(c, err)
		return
	}
	utils.Success(c, 200, "Orders imported", result)
}

// readUpload pulls the named multipart file into memory. On failure it writes
// the error response and returns ok=false.
func readUpload(c *gin.Context, names ...string) ([]byte, string, bool) {
	for _, name := range names {
		fh, err := c.FormFile(name)
		if err != nil {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			utils.Error(c, 400, "READ_ERROR", "Unable to read uploaded file")
			return nil, "", false
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			utils.Error(c, 400, "READ_ERROR", "Unable to read uploaded file")
			return nil, "", false
		}
		return data, fh.Filename, true
	}
	utils.Error(c, 400, "MISSING_FILE", "No file provided")
	return nil, "", false
}

// respondIngestError maps structural ingestion failures to 400s; anything
// else is a 500.
func respondIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrEmptyFile):
		utils.Error(c, 400, "EMPTY_FILE", "Uploaded file is empty")
	case errors.Is(err, ingest.ErrNoSheets):
		utils.Error(c, 400, "NO_SHEETS", "Workbook has no sheets")
	case errors.Is(err, ingest.ErrNoRows):
		utils.Error(c, 400, "NO_ROWS", "Workbook has no data rows")
	case errors.Is(err, ingest.ErrMalformedFile):
		utils.Error(c, 400, "INVALID_FILE", "Unable to parse uploaded file")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Import failed")
	}
}

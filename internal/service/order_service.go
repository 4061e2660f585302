package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ormanet/lumeo-api/internal/ingest"
	"github.com/ormanet/lumeo-api/internal/models"
)

// orderStore is the slice of the order repository this service needs.
type orderStore interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
	BulkInsert(orders []models.Order) (int, error)
	GetAll(filter *models.OrderFilter) ([]models.Order, error)
}

// OrderService handles the one-way order history sync and account queries.
type OrderService struct {
	repo          orderStore
	retentionDays int
}

// NewOrderService constructs an OrderService.
func NewOrderService(repo orderStore, retentionDays int) *OrderService {
	return &OrderService{repo: repo, retentionDays: retentionDays}
}

// OrderImportResult summarizes one import run.
type OrderImportResult struct {
	RemovedOlderThan int64             `json:"removedOlderThan"`
	Inserted         int               `json:"inserted"`
	Skipped          int               `json:"skipped"`
	Errors           []models.RowError `json:"errors"`
}

// Import ingests a management-system order export (CSV or xlsx, picked by the
// filename). Orders older than the retention window are purged first, then
// every parseable row is appended. A row without both a document number and a
// customer email is skipped and reported; it never aborts the batch.
func (s *OrderService) Import(data []byte, fileName string) (*OrderImportResult, error) {
	var rows [][]string
	var err error
	if ingest.IsWorkbookFilename(fileName) {
		rows, err = ingest.OpenWorkbook(data)
	} else {
		rows, err = ingest.ReadCSV(data)
	}
	if err != nil {
		return nil, err
	}

	headers := ingest.NewHeaderMap(rows[0])
	result := &OrderImportResult{Errors: []models.RowError{}}

	var orders []models.Order
	for i, row := range rows[1:] {
		rowNum := i + 1
		if ingest.IsEmptyRow(row) {
			continue
		}

		order, rowErr := orderFromRow(headers, row, rowNum)
		if rowErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		orders = append(orders, *order)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	removed, err := s.repo.DeleteOlderThan(cutoff)
	if err != nil {
		return nil, err
	}
	result.RemovedOlderThan = removed

	inserted, err := s.repo.BulkInsert(orders)
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted

	log.Info().
		Str("file", fileName).
		Int64("removed", removed).
		Int("inserted", inserted).
		Int("skipped", result.Skipped).
		Msg("order import complete")

	return result, nil
}

func orderFromRow(headers *ingest.HeaderMap, row []string, rowNum int) (*models.Order, *models.RowError) {
	documentNumber := headers.Cell(row, -1, "numero documento", "documento", "doc", "document_number")
	customerEmail := headers.Cell(row, -1, "email", "email cliente", "customer_email")

	if documentNumber == "" || customerEmail == "" {
		return nil, &models.RowError{Row: rowNum, Reason: "missing_document_or_email"}
	}

	return &models.Order{
		DocumentNumber: documentNumber,
		Status:         headers.Cell(row, -1, "stato", "status"),
		Cause:          headers.Cell(row, -1, "causale", "cause"),
		CustomerName:   headers.Cell(row, -1, "ragione sociale", "cliente", "customer_name"),
		CustomerEmail:  customerEmail,
		OrderDate:      ingest.ParseDate(headers.Cell(row, -1, "data ordine", "data", "order_date")),
		TotalAmount:    ingest.ParseNullableAmount(headers.Cell(row, -1, "totale", "importo", "total_amount")),
		ExternalID:     headers.Cell(row, -1, "id gestionale", "external_id"),
		Notes:          headers.Cell(row, -1, "note", "notes"),
	}, nil
}

// List returns order history narrowed by the filter. Unless the filter opts
// into IncludeAll, a customer email is required so account holders only see
// their own rows.
func (s *OrderService) List(filter *models.OrderFilter) ([]models.Order, error) {
	if filter == nil {
		filter = &models.OrderFilter{}
	}
	if !filter.IncludeAll && filter.CustomerEmail == "" {
		return []models.Order{}, nil
	}
	if filter.IncludeAll {
		// Admins see everything; drop the per-customer narrowing.
		filter.CustomerEmail = ""
		filter.CustomerName = ""
	}

	orders, err := s.repo.GetAll(filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ormanet/lumeo-api/internal/ingest"
	"github.com/ormanet/lumeo-api/internal/models"
)

// catalogWriter is the slice of the product repository the importer needs.
type catalogWriter interface {
	Upsert(product *models.Product) (*models.Product, error)
	Exists(sku string) (bool, error)
}

// importRecorder persists the import audit trail.
type importRecorder interface {
	RecordPriceListImport(fileName string, totalProducts int) (*models.PriceListImport, error)
	LastPriceListImport() (*models.PriceListImport, error)
}

// importStatusCache mirrors the last-import timestamp into Redis.
type importStatusCache interface {
	SetPriceListImportedAt(ctx context.Context, at time.Time) error
	PriceListImportedAt(ctx context.Context) (*time.Time, error)
}

// PriceListImportService ingests management-system price list workbooks into
// the catalog.
type PriceListImportService struct {
	catalog catalogWriter
	imports importRecorder
	status  importStatusCache
}

// NewPriceListImportService constructs a PriceListImportService. status may be
// nil when no cache is wired.
func NewPriceListImportService(catalog catalogWriter, imports importRecorder, status importStatusCache) *PriceListImportService {
	return &PriceListImportService{catalog: catalog, imports: imports, status: status}
}

// PriceListImportResult summarizes one import run.
type PriceListImportResult struct {
	Inserted     int               `json:"inserted"`
	Updated      int               `json:"updated"`
	Skipped      int               `json:"skipped"`
	Errors       []models.RowError `json:"errors"`
	LastImportAt time.Time         `json:"lastImportAt"`
}

// Import parses a price list workbook and upserts every product row. The
// first row is the header; synonym lookups tolerate the naming drift between
// exports. A row missing both code and description is skipped; any other cell
// problem degrades to a default value instead of failing the row. Re-running
// the same file yields the same catalog state.
func (s *PriceListImportService) Import(ctx context.Context, data []byte, fileName string) (*PriceListImportResult, error) {
	rows, err := ingest.OpenWorkbook(data)
	if err != nil {
		return nil, err
	}

	headers := ingest.NewHeaderMap(rows[0])
	result := &PriceListImportResult{Errors: []models.RowError{}}

	for i, row := range rows[1:] {
		rowNum := i + 1
		if ingest.IsEmptyRow(row) {
			continue
		}

		product, rowErr := s.productFromRow(headers, row, rowNum)
		if rowErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, *rowErr)
			continue
		}

		existed, err := s.catalog.Exists(product.SKU)
		if err != nil {
			return nil, err
		}
		if _, err := s.catalog.Upsert(product); err != nil {
			log.Error().Err(err).Str("sku", product.SKU).Int("row", rowNum).Msg("price list row upsert failed")
			result.Errors = append(result.Errors, models.RowError{Row: rowNum, Reason: "persist_failed", Detail: err.Error()})
			continue
		}
		if existed {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	total := result.Inserted + result.Updated
	rec, err := s.imports.RecordPriceListImport(fileName, total)
	if err != nil {
		return nil, err
	}
	result.LastImportAt = rec.ImportedAt

	if s.status != nil {
		if err := s.status.SetPriceListImportedAt(ctx, rec.ImportedAt); err != nil {
			log.Warn().Err(err).Msg("price list import timestamp cache update failed")
		}
	}

	log.Info().
		Str("file", fileName).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("price list import complete")

	return result, nil
}

// productFromRow maps one data row to a catalog record. The reseller price
// doubles as the generic base price; a missing code falls back to the first
// 20 characters of the description.
func (s *PriceListImportService) productFromRow(headers *ingest.HeaderMap, row []string, rowNum int) (*models.Product, *models.RowError) {
	code := headers.Cell(row, -1, "codice", "codice articolo", "sku")
	description := headers.Cell(row, -1,
		"descrizione", "descrizione articolo", "descrizione_articolo", "nome", "nome articolo")

	if code == "" && description == "" {
		return nil, &models.RowError{Row: rowNum, Reason: "missing_code_and_description"}
	}

	sku := code
	if sku == "" {
		if r := []rune(description); len(r) > 20 {
			sku = string(r[:20])
		} else {
			sku = description
		}
	}

	priceDist := ingest.ParseAmount(headers.Cell(row, -1, "prezzo_distributore", "prezzo distributore"), 0)
	priceRiv := ingest.ParseAmount(headers.Cell(row, -1, "prezzo_rivenditore", "prezzo rivenditore"), 0)
	priceRiv10 := ingest.ParseAmount(headers.Cell(row, -1,
		"prezzo_rivenditore10", "prezzo rivenditore10", "prezzo_rivenditore_10", "prezzo rivenditore 10"), 0)
	qty := ingest.ParseInt(headers.Cell(row, -1,
		"quantità_stock", "quantita_stock", "quantita stock", "quantità stock", "qta", "giacenza"), 0)

	status := models.ProductStatusUnavailable
	if strings.EqualFold(headers.Cell(row, -1, "status", "stato"), "S") {
		status = models.ProductStatusActive
	}

	name := description
	if name == "" {
		name = sku
	}

	return &models.Product{
		SKU:             sku,
		Name:            name,
		DescriptionHTML: description,
		Unit:            "pz",
		BasePrice:       priceRiv,
		PriceDistributor: &priceDist,
		PriceReseller:    &priceRiv,
		PriceReseller10:  &priceRiv10,
		StockQty:        qty,
		Status:          status,
		Gallery:         models.StringList{},
		Extra:           models.JSONMap{},
	}, nil
}

// Status returns the timestamp of the most recent import, preferring the
// Redis copy and falling back to the audit table.
func (s *PriceListImportService) Status(ctx context.Context) (*time.Time, error) {
	if s.status != nil {
		if at, err := s.status.PriceListImportedAt(ctx); err == nil && at != nil {
			return at, nil
		}
	}

	rec, err := s.imports.LastPriceListImport()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	at := rec.ImportedAt
	return &at, nil
}

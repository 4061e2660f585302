package service

import (
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ormanet/lumeo-api/internal/ingest"
	"github.com/ormanet/lumeo-api/internal/models"
)

// buildWorkbook renders rows into an in-memory xlsx payload.
func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

type fakeCatalogWriter struct {
	products map[string]*models.Product
}

func newFakeCatalogWriter() *fakeCatalogWriter {
	return &fakeCatalogWriter{products: make(map[string]*models.Product)}
}

func (f *fakeCatalogWriter) Upsert(product *models.Product) (*models.Product, error) {
	cp := *product
	f.products[product.SKU] = &cp
	return &cp, nil
}

func (f *fakeCatalogWriter) Exists(sku string) (bool, error) {
	_, ok := f.products[sku]
	return ok, nil
}

type fakeImportRecorder struct {
	records []models.PriceListImport
}

func (f *fakeImportRecorder) RecordPriceListImport(fileName string, totalProducts int) (*models.PriceListImport, error) {
	rec := models.PriceListImport{
		ID:            int64(len(f.records) + 1),
		ImportedAt:    time.Now().UTC(),
		FileName:      fileName,
		TotalProducts: totalProducts,
	}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeImportRecorder) LastPriceListImport() (*models.PriceListImport, error) {
	if len(f.records) == 0 {
		return nil, nil
	}
	rec := f.records[len(f.records)-1]
	return &rec, nil
}

func priceListRows() [][]string {
	return [][]string{
		{"Codice", "Descrizione Articolo", "Prezzo Distributore", "Prezzo Rivenditore", "Prezzo Rivenditore 10", "Quantità Stock", "Stato"},
		{"ART-001", "Toner nero rigenerato", "10,50", "12,00", "11,00", "25", "S"},
		{"ART-002", "Cartuccia ciano", "€ 5,00", "6,50", "6,00", "N/A", "N"},
		{"", "Tamburo fotoconduttore lunga durata", "20,00", "24,00", "22,00", "3", "S"},
	}
}

func TestPriceListImport(t *testing.T) {
	catalog := newFakeCatalogWriter()
	recorder := &fakeImportRecorder{}
	svc := NewPriceListImportService(catalog, recorder, nil)

	result, err := svc.Import(context.Background(), buildWorkbook(t, priceListRows()), "listino.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 3 || result.Updated != 0 || result.Skipped != 0 {
		t.Fatalf("expected 3 inserted, got %+v", result)
	}

	p := catalog.products["ART-001"]
	if p == nil {
		t.Fatalf("ART-001 missing from catalog")
	}
	if p.BasePrice != 12 || *p.PriceDistributor != 10.5 || *p.PriceReseller10 != 11 {
		t.Fatalf("prices not parsed: %+v", p)
	}
	if p.StockQty != 25 || p.Status != models.ProductStatusActive || p.Unit != "pz" {
		t.Fatalf("row fields not mapped: %+v", p)
	}

	// N/A stock defaults to 0, status other than S is unavailable.
	p2 := catalog.products["ART-002"]
	if p2.StockQty != 0 || p2.Status != models.ProductStatusUnavailable {
		t.Fatalf("defaults not applied: %+v", p2)
	}

	// Missing code: SKU from the first 20 chars of the description.
	if _, ok := catalog.products["Tamburo fotocondutto"]; !ok {
		t.Fatalf("description-derived SKU missing, have %v", keysOf(catalog.products))
	}

	if len(recorder.records) != 1 || recorder.records[0].TotalProducts != 3 {
		t.Fatalf("audit record wrong: %+v", recorder.records)
	}
}

func keysOf(m map[string]*models.Product) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestPriceListImportIdempotent(t *testing.T) {
	catalog := newFakeCatalogWriter()
	svc := NewPriceListImportService(catalog, &fakeImportRecorder{}, nil)
	data := buildWorkbook(t, priceListRows())

	if _, err := svc.Import(context.Background(), data, "listino.xlsx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Import(context.Background(), data, "listino.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.Inserted != 0 || second.Updated != 3 {
		t.Fatalf("re-import must update, not insert: %+v", second)
	}
	if len(catalog.products) != 3 {
		t.Fatalf("re-import must not duplicate rows, got %d", len(catalog.products))
	}
}

func TestPriceListImportRowFaultIsolation(t *testing.T) {
	// Two rows carry a price but neither code nor description; they must be
	// reported without aborting the batch.
	rows := [][]string{
		{"Codice", "Descrizione", "Prezzo Rivenditore"},
		{"ART-001", "Toner", "12,00"},
		{"", "", "9,00"},
		{"ART-002", "Cartuccia", "6,50"},
		{"", "", "7,00"},
	}

	catalog := newFakeCatalogWriter()
	svc := NewPriceListImportService(catalog, &fakeImportRecorder{}, nil)

	result, err := svc.Import(context.Background(), buildWorkbook(t, rows), "listino.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("good rows must still land, got %d inserted", result.Inserted)
	}
	if result.Skipped != 2 || len(result.Errors) != 2 {
		t.Fatalf("bad rows must be reported: %+v", result)
	}
	if result.Errors[0].Reason != "missing_code_and_description" {
		t.Fatalf("unexpected row error: %+v", result.Errors[0])
	}
}

func TestPriceListImportStructuralErrors(t *testing.T) {
	svc := NewPriceListImportService(newFakeCatalogWriter(), &fakeImportRecorder{}, nil)

	if _, err := svc.Import(context.Background(), nil, "listino.xlsx"); err != ingest.ErrEmptyFile {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := svc.Import(context.Background(), []byte("not a workbook"), "listino.xlsx"); err == nil {
		t.Fatalf("garbage payload must fail the batch")
	}
}

package service

import (
	"testing"

	"github.com/ormanet/lumeo-api/internal/models"
)

// promoRow builds one positional row of the promo signup export.
func promoRow(company, taxID, email, phone, segment string) []string {
	return []string{"azienda", company, taxID, "SDI123", "ordinario", "Via Roma 1", email, phone, "web", "bonifico", segment}
}

func TestClientImport(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientImportService(NewClientService(store), nil, nil)

	rows := [][]string{
		promoRow("ACME Srl", "IT111", "acme@example.com", "055111", "rivenditore"),
		promoRow("Beta Spa", "IT222", "beta@example.com", "055222", "distributore"),
	}

	result, err := svc.Import(buildWorkbook(t, rows))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 2 || result.Imported != 2 || result.Updated != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	acme, err := store.FindByEmailOrTaxID("acme@example.com", "")
	if err != nil {
		t.Fatalf("imported client missing: %v", err)
	}
	if acme.Segment != models.SegmentReseller {
		t.Fatalf("Italian segment name should map, got %s", acme.Segment)
	}
	if !acme.PromoEnabled {
		t.Fatalf("imported clients must be promo-enrolled")
	}
}

func TestClientImportRowFaultIsolation(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientImportService(NewClientService(store), nil, nil)

	rows := [][]string{
		promoRow("ACME Srl", "IT111", "acme@example.com", "", ""),
		promoRow("No Keys", "", "", "", ""),                      // neither email nor tax id
		promoRow("Bad Mail", "IT333", "not-an-email", "", ""),    // invalid email
		promoRow("Gamma Snc", "IT444", "gamma@example.com", "", ""),
	}

	result, err := svc.Import(buildWorkbook(t, rows))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("good rows must still land, got %d", result.Imported)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %+v", result.Errors)
	}
	if result.Errors[0].Reason != "missing_email_and_tax_id" {
		t.Fatalf("unexpected first error: %+v", result.Errors[0])
	}
	if result.Errors[1].Reason != "invalid_email" {
		t.Fatalf("unexpected second error: %+v", result.Errors[1])
	}
}

func TestClientImportDeDup(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientImportService(NewClientService(store), nil, nil)

	rows := [][]string{
		promoRow("ACME Srl", "IT111", "acme@example.com", "", ""),
		promoRow("ACME Srl", "IT999", "acme@example.com", "", ""), // same email, other tax id
	}

	result, err := svc.Import(buildWorkbook(t, rows))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 1 || result.Updated != 1 {
		t.Fatalf("same email must update, not duplicate: %+v", result)
	}
	if len(store.clients) != 1 {
		t.Fatalf("expected 1 client row, got %d", len(store.clients))
	}
}

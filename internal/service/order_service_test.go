package service

import (
	"strings"
	"testing"
	"time"

	"github.com/ormanet/lumeo-api/internal/models"
)

type fakeOrderStore struct {
	orders []models.Order
	cutoff time.Time
}

func (f *fakeOrderStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	var kept []models.Order
	var removed int64
	for _, o := range f.orders {
		if o.OrderDate != nil && o.OrderDate.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	f.orders = kept
	return removed, nil
}

func (f *fakeOrderStore) BulkInsert(orders []models.Order) (int, error) {
	f.orders = append(f.orders, orders...)
	return len(orders), nil
}

func (f *fakeOrderStore) GetAll(filter *models.OrderFilter) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if filter.CustomerEmail != "" && !strings.EqualFold(o.CustomerEmail, filter.CustomerEmail) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

const ordersCSV = `Numero Documento,Stato,Causale,Ragione Sociale,Email,Data Ordine,Totale,Note
DOC-1,evaso,vendita,ACME Srl,acme@example.com,15/08/2026,"1.234,50",urgente
DOC-2,aperto,vendita,Beta Spa,beta@example.com,20/08/2026,99,
DOC-3,evaso,vendita,No Mail,,21/08/2026,10,
`

func TestOrderImportCSV(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, 31)

	result, err := svc.Import([]byte(ordersCSV), "orders_latest.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", result.Inserted)
	}
	if result.Skipped != 1 || len(result.Errors) != 1 {
		t.Fatalf("row without email must be skipped and reported: %+v", result)
	}

	first := store.orders[0]
	if first.DocumentNumber != "DOC-1" || first.CustomerEmail != "acme@example.com" {
		t.Fatalf("row not mapped: %+v", first)
	}
	if first.TotalAmount == nil || *first.TotalAmount != 1234.5 {
		t.Fatalf("Italian total not parsed: %v", first.TotalAmount)
	}
	if first.OrderDate == nil || first.OrderDate.Day() != 15 || first.OrderDate.Month() != time.August {
		t.Fatalf("order date not parsed: %v", first.OrderDate)
	}
}

func TestOrderImportRetention(t *testing.T) {
	old := time.Now().UTC().AddDate(0, 0, -60)
	recent := time.Now().UTC().AddDate(0, 0, -5)
	store := &fakeOrderStore{orders: []models.Order{
		{DocumentNumber: "OLD-1", OrderDate: &old},
		{DocumentNumber: "NEW-1", OrderDate: &recent},
		{DocumentNumber: "NODATE"},
	}}
	svc := NewOrderService(store, 31)

	result, err := svc.Import([]byte(ordersCSV), "orders_latest.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RemovedOlderThan != 1 {
		t.Fatalf("expected 1 expired order removed, got %d", result.RemovedOlderThan)
	}

	// Orders without a date survive retention.
	found := false
	for _, o := range store.orders {
		if o.DocumentNumber == "NODATE" {
			found = true
		}
	}
	if !found {
		t.Fatalf("dateless orders must not be purged")
	}
}

func TestOrderListRequiresEmailUnlessAdmin(t *testing.T) {
	store := &fakeOrderStore{orders: []models.Order{
		{DocumentNumber: "DOC-1", CustomerEmail: "acme@example.com"},
		{DocumentNumber: "DOC-2", CustomerEmail: "beta@example.com"},
	}}
	svc := NewOrderService(store, 31)

	orders, err := svc.List(&models.OrderFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("anonymous filter must see nothing, got %d", len(orders))
	}

	orders, err = svc.List(&models.OrderFilter{CustomerEmail: "acme@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].DocumentNumber != "DOC-1" {
		t.Fatalf("account holders see only their rows: %+v", orders)
	}

	orders, err = svc.List(&models.OrderFilter{IncludeAll: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("admin filter sees everything, got %d", len(orders))
	}
}

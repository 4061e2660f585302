package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/repository"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// fakeLedger mirrors the repository's grant contract in memory: counter plus
// ledger updated together, ticket assigned once while enrolled.
type fakeLedger struct {
	clients map[int64]*models.Client
	entries []models.PromoLedgerEntry
}

func newFakeLedger(clients ...*models.Client) *fakeLedger {
	f := &fakeLedger{clients: make(map[int64]*models.Client)}
	for _, c := range clients {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeLedger) GrantPoints(clientID int64, action models.ActionCode, points int, newTicket string) (*repository.GrantResult, error) {
	client, ok := f.clients[clientID]
	if !ok {
		return nil, sql.ErrNoRows
	}

	entry := models.PromoLedgerEntry{
		ID:         int64(len(f.entries) + 1),
		ClientID:   clientID,
		ActionCode: action,
		Points:     points,
		CreatedAt:  time.Now(),
	}
	f.entries = append(f.entries, entry)

	client.PromoPoints += points
	if client.PromoTicketCode == nil && client.PromoEnabled {
		ticket := newTicket
		client.PromoTicketCode = &ticket
	}
	return &repository.GrantResult{Entry: entry, TotalPoints: client.PromoPoints, TicketCode: client.PromoTicketCode}, nil
}

func (f *fakeLedger) ListLedger(clientID int64) ([]models.PromoLedgerEntry, error) {
	var out []models.PromoLedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ClientID == clientID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeLedger) GetByID(id int64) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return client, nil
}

func enrolledClient(id int64) *models.Client {
	return &models.Client{ID: id, CompanyName: "ACME", Email: "acme@example.com", PromoEnabled: true}
}

func TestGrantUnknownActionCode(t *testing.T) {
	ledger := newFakeLedger(enrolledClient(1))
	svc := NewLoyaltyService(ledger, ledger)

	if _, err := svc.Grant(1, "FREE_POINTS"); err != utils.ErrUnknownActionCode {
		t.Fatalf("expected ErrUnknownActionCode, got %v", err)
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("rejected grant must not touch the ledger")
	}
}

func TestGrantClientNotFound(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewLoyaltyService(ledger, ledger)

	if _, err := svc.Grant(99, models.ActionFollowSocial); err != utils.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestGrantAccumulatesAndDerivesTier(t *testing.T) {
	ledger := newFakeLedger(enrolledClient(1))
	svc := NewLoyaltyService(ledger, ledger)

	out, err := svc.Grant(1, models.ActionReachAvgRevenue) // 200
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalPoints != 200 || out.Tier != models.TierBase {
		t.Fatalf("expected 200 points tier base, got %d %s", out.TotalPoints, out.Tier)
	}

	out, err = svc.Grant(1, models.ActionReachAvgRevenue) // 400
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalPoints != 400 || out.Tier != models.Tier1 {
		t.Fatalf("expected 400 points tier1, got %d %s", out.TotalPoints, out.Tier)
	}

	out, err = svc.Grant(1, models.ActionBringNewCompany) // 1400
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Tier != models.TierMax {
		t.Fatalf("expected max tier at %d points, got %s", out.TotalPoints, out.Tier)
	}
}

func TestGrantTicketStability(t *testing.T) {
	ledger := newFakeLedger(enrolledClient(1))
	svc := NewLoyaltyService(ledger, ledger)

	first, err := svc.Grant(1, models.ActionFollowSocial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TicketCode == nil {
		t.Fatalf("enrolled client should get a ticket on first grant")
	}

	second, err := svc.Grant(1, models.ActionFollowSocial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.TicketCode == nil || *second.TicketCode != *first.TicketCode {
		t.Fatalf("ticket must not change on later grants: %v vs %v", first.TicketCode, second.TicketCode)
	}
}

func TestGrantNoTicketWhenNotEnrolled(t *testing.T) {
	client := enrolledClient(1)
	client.PromoEnabled = false
	ledger := newFakeLedger(client)
	svc := NewLoyaltyService(ledger, ledger)

	out, err := svc.Grant(1, models.ActionFollowSocial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TicketCode != nil {
		t.Fatalf("non-enrolled client must not get a ticket, got %v", *out.TicketCode)
	}
}

func TestGetSummary(t *testing.T) {
	client := enrolledClient(1)
	ledger := newFakeLedger(client)
	svc := NewLoyaltyService(ledger, ledger)

	if _, err := svc.Grant(1, models.ActionAddBroadcast); err != nil { // 50
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Grant(1, models.ActionUpsellRevenue); err != nil { // 550
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := svc.GetSummary(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Points != 550 {
		t.Fatalf("expected 550 points, got %d", summary.Points)
	}
	if summary.Tier != models.Tier1 {
		t.Fatalf("expected tier1, got %s", summary.Tier)
	}
	if len(summary.PrizesAvailable) != 3 {
		t.Fatalf("tier1 has exactly 3 prizes, got %d", len(summary.PrizesAvailable))
	}
	if len(summary.Actions) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(summary.Actions))
	}
	if summary.Actions[0].ActionCode != models.ActionUpsellRevenue {
		t.Fatalf("ledger must be newest-first, got %s first", summary.Actions[0].ActionCode)
	}
	if summary.TicketCode == nil {
		t.Fatalf("summary should carry the ticket code")
	}
}

func TestGetSummaryClientNotFound(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewLoyaltyService(ledger, ledger)

	if _, err := svc.GetSummary(42); err != utils.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

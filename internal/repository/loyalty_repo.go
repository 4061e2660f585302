package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

// LoyaltyRepository handles the promo ledger and the per-client point counter.
type LoyaltyRepository struct {
	db *sqlx.DB
}

// NewLoyaltyRepository creates a new LoyaltyRepository.
func NewLoyaltyRepository(db *sqlx.DB) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

// GrantResult reports the outcome of a point grant.
type GrantResult struct {
	Entry       models.PromoLedgerEntry
	TotalPoints int
	TicketCode  *string
}

// GrantPoints appends a ledger entry and bumps the client counter in one
// transaction. A win ticket is assigned at most once per client, only while
// the client is enrolled. The client row is locked for the duration so
// concurrent grants serialize instead of losing points.
func (r *LoyaltyRepository) GrantPoints(clientID int64, action models.ActionCode, points int, newTicket string) (*GrantResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var client models.Client
	if err := tx.Get(&client, `SELECT * FROM clients WHERE id = $1 FOR UPDATE`, clientID); err != nil {
		return nil, err
	}

	var entry models.PromoLedgerEntry
	if err := tx.QueryRowx(
		`INSERT INTO promo_ledger (client_id, action_code, points)
         VALUES ($1, $2, $3)
         RETURNING id, client_id, action_code, points, created_at`,
		clientID, action, points,
	).StructScan(&entry); err != nil {
		return nil, err
	}

	total := client.PromoPoints + points
	ticket := client.PromoTicketCode
	if ticket == nil && client.PromoEnabled {
		ticket = &newTicket
	}

	if _, err := tx.Exec(
		`UPDATE clients SET promo_points = $1, promo_ticket_code = $2, updated_at = NOW() WHERE id = $3`,
		total, ticket, clientID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &GrantResult{Entry: entry, TotalPoints: total, TicketCode: ticket}, nil
}

// ListLedger returns a client's ledger entries newest-first.
func (r *LoyaltyRepository) ListLedger(clientID int64) ([]models.PromoLedgerEntry, error) {
	const q = `
        SELECT * FROM promo_ledger
        WHERE client_id = $1
        ORDER BY created_at DESC, id DESC`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var entries []models.PromoLedgerEntry
	if err := stmt.Select(&entries, clientID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

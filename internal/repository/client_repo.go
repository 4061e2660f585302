package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

// ClientRepository handles data access for client records.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client and fills the generated fields.
func (r *ClientRepository) Create(client *models.Client) error {
	const q = `
        INSERT INTO clients (
            company_name, tax_id, email, phone, segment, status, note,
            promo_enabled, promo_points, promo_ticket_code, user_id
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		client.CompanyName,
		client.TaxID,
		client.Email,
		client.Phone,
		client.Segment,
		client.Status,
		client.Note,
		client.PromoEnabled,
		client.PromoPoints,
		client.PromoTicketCode,
		client.UserID,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

// Update overwrites the profile columns of an existing client. Loyalty state
// (promo_points, promo_ticket_code) is managed by the loyalty repository and
// deliberately not touched here.
func (r *ClientRepository) Update(client *models.Client) error {
	const q = `
        UPDATE clients
        SET company_name = $1, tax_id = $2, email = $3, phone = $4,
            segment = $5, status = $6, note = $7, promo_enabled = $8,
            user_id = $9, updated_at = NOW()
        WHERE id = $10
        RETURNING updated_at`

	err := r.db.QueryRowx(q,
		client.CompanyName,
		client.TaxID,
		client.Email,
		client.Phone,
		client.Segment,
		client.Status,
		client.Note,
		client.PromoEnabled,
		client.UserID,
		client.ID,
	).Scan(&client.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// GetByID returns a single client by id.
func (r *ClientRepository) GetByID(id int64) (*models.Client, error) {
	const q = `SELECT * FROM clients WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var c models.Client
	if err := stmt.Get(&c, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByEmail returns a single client by exact email match.
func (r *ClientRepository) GetByEmail(email string) (*models.Client, error) {
	const q = `SELECT * FROM clients WHERE email = $1 ORDER BY id LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var c models.Client
	if err := stmt.Get(&c, email); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByEmailOrTaxID resolves the canonical client for an import row: email
// match wins, tax id is the fallback. Returns sql.ErrNoRows when neither key
// matches.
func (r *ClientRepository) FindByEmailOrTaxID(email, taxID string) (*models.Client, error) {
	if email != "" {
		c, err := r.GetByEmail(email)
		if err == nil {
			return c, nil
		}
		if err != sql.ErrNoRows {
			return nil, err
		}
	}
	if taxID == "" {
		return nil, sql.ErrNoRows
	}

	const q = `SELECT * FROM clients WHERE tax_id = $1 ORDER BY id LIMIT 1`
	var c models.Client
	if err := r.db.Get(&c, q, taxID); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll returns clients newest-first with optional filters on segment and
// promo enrollment.
func (r *ClientRepository) GetAll(segment string, promoOnly bool) ([]models.Client, error) {
	q := `SELECT * FROM clients WHERE ($1 = '' OR segment = $1)`
	args := []interface{}{segment}
	if promoOnly {
		q += ` AND promo_enabled = true`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	var clients []models.Client
	if err := r.db.Select(&clients, q, args...); err != nil {
		return nil, err
	}
	return clients, nil
}

// Delete removes a client by id.
func (r *ClientRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LinkToUserByEmail attaches the user id to any client whose email matches
// and has no user link yet. Returns the number of rows linked.
func (r *ClientRepository) LinkToUserByEmail(userID int64, email string) (int64, error) {
	const q = `
        UPDATE clients SET user_id = $1, updated_at = NOW()
        WHERE email = $2 AND user_id IS NULL`

	res, err := r.db.Exec(q, userID, email)
	if err != nil {
		return 0, fmt.Errorf("failed to link client to user: %w", err)
	}
	return res.RowsAffected()
}

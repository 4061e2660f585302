package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

// DiscountRepository handles data access for bracketed discount rules.
type DiscountRepository struct {
	db *sqlx.DB
}

// NewDiscountRepository creates a new DiscountRepository.
func NewDiscountRepository(db *sqlx.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// GetAll returns every stored rule ordered by (offer_id, segment, min_amount),
// the order the pricing engine expects brackets in.
func (r *DiscountRepository) GetAll() ([]models.DiscountRule, error) {
	const q = `
        SELECT * FROM discount_rules
        ORDER BY offer_id, segment, min_amount`

	var rules []models.DiscountRule
	if err := r.db.Select(&rules, q); err != nil {
		return nil, err
	}
	return rules, nil
}

// GetByOffer returns the rules of a single offer ordered by (segment,
// min_amount).
func (r *DiscountRepository) GetByOffer(offerID string) ([]models.DiscountRule, error) {
	const q = `
        SELECT * FROM discount_rules
        WHERE offer_id = $1
        ORDER BY segment, min_amount`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var rules []models.DiscountRule
	if err := stmt.Select(&rules, offerID); err != nil {
		return nil, err
	}
	return rules, nil
}

// ReplaceForOfferSegment swaps the bracket set of one (offer, segment) pair in
// a single transaction: readers never observe a partial rule set.
func (r *DiscountRepository) ReplaceForOfferSegment(offerID string, segment models.Segment, brackets []models.Bracket) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM discount_rules WHERE offer_id = $1 AND segment = $2`,
		offerID, segment,
	); err != nil {
		return err
	}

	const insert = `
        INSERT INTO discount_rules (offer_id, segment, min_amount, max_amount, discount_percent, valid_until)
        VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := tx.Preparex(insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range brackets {
		if _, err := stmt.Exec(offerID, segment, b.Min, b.Max, b.Discount, b.ValidUntil); err != nil {
			return err
		}
	}

	return tx.Commit()
}

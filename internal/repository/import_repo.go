package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

const metaKeyLastPriceListImport = "last_price_list_import_at"

// ImportRepository persists import audit records and the meta key-value pairs
// used by status endpoints.
type ImportRepository struct {
	db *sqlx.DB
}

// NewImportRepository creates a new ImportRepository.
func NewImportRepository(db *sqlx.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// RecordPriceListImport appends an audit row and refreshes the meta timestamp
// in one transaction.
func (r *ImportRepository) RecordPriceListImport(fileName string, totalProducts int) (*models.PriceListImport, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rec models.PriceListImport
	if err := tx.QueryRowx(
		`INSERT INTO price_list_imports (file_name, total_products)
         VALUES ($1, $2)
         RETURNING id, imported_at, file_name, total_products`,
		fileName, totalProducts,
	).StructScan(&rec); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ($1, $2)
         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		metaKeyLastPriceListImport, rec.ImportedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LastPriceListImport returns the most recent audit row, or nil when no import
// has ever run.
func (r *ImportRepository) LastPriceListImport() (*models.PriceListImport, error) {
	const q = `SELECT * FROM price_list_imports ORDER BY imported_at DESC, id DESC LIMIT 1`

	var rec models.PriceListImport
	if err := r.db.Get(&rec, q); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetMeta returns the value of a meta key, or "" when the key is absent.
func (r *ImportRepository) GetMeta(key string) (string, error) {
	var value string
	if err := r.db.Get(&value, `SELECT value FROM meta WHERE key = $1`, key); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetMeta upserts a meta key-value pair.
func (r *ImportRepository) SetMeta(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO meta (key, value) VALUES ($1, $2)
         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	return err
}

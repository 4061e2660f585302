package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

// OrderRepository handles data access for imported order history.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DeleteOlderThan removes orders dated before the cutoff. Rows with a NULL
// order_date are kept: an unknown date is not evidence the order is stale.
func (r *OrderRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM orders WHERE order_date < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BulkInsert appends orders one statement per row inside a transaction.
func (r *OrderRepository) BulkInsert(orders []models.Order) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const q = `
        INSERT INTO orders (
            document_number, status, cause, customer_name, customer_email,
            order_date, total_amount, external_id, notes
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	stmt, err := tx.Preparex(q)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, o := range orders {
		if _, err := stmt.Exec(
			o.DocumentNumber, o.Status, o.Cause, o.CustomerName, o.CustomerEmail,
			o.OrderDate, o.TotalAmount, o.ExternalID, o.Notes,
		); err != nil {
			return 0, fmt.Errorf("failed to insert order %s: %w", o.DocumentNumber, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetAll returns orders newest-first, narrowed by the filter.
func (r *OrderRepository) GetAll(filter *models.OrderFilter) ([]models.Order, error) {
	q := `SELECT * FROM orders WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.CustomerEmail != "" {
		q += fmt.Sprintf(" AND LOWER(customer_email) = LOWER($%d)", argIdx)
		args = append(args, filter.CustomerEmail)
		argIdx++
	}
	if filter.CustomerName != "" {
		q += fmt.Sprintf(" AND customer_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.CustomerName+"%")
		argIdx++
	}
	if filter.Status != "" {
		q += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Cause != "" {
		q += fmt.Sprintf(" AND cause = $%d", argIdx)
		args = append(args, filter.Cause)
		argIdx++
	}
	if filter.DateFrom != nil {
		q += fmt.Sprintf(" AND order_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		q += fmt.Sprintf(" AND order_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	q += ` ORDER BY order_date DESC NULLS LAST, id DESC`

	var orders []models.Order
	if err := r.db.Select(&orders, q, args...); err != nil {
		return nil, err
	}
	return orders, nil
}

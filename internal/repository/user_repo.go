package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

// UserRepository handles data access for login accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills the generated fields.
func (r *UserRepository) Create(user *models.User) error {
	const q = `
        INSERT INTO users (email, password_hash, name, segment, tax_id, phone, is_admin)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Segment,
		user.TaxID,
		user.Phone,
		user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetByEmail returns a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var u models.User
	if err := stmt.Get(&u, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	const q = `SELECT * FROM users WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var u models.User
	if err := stmt.Get(&u, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db.Exec(
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

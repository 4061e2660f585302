package models

import "time"

// User is a login account. A user may be soft-linked to a Client row by
// matching email; the link is re-attempted on login and on client import.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Segment      Segment   `db:"segment" json:"segment"`
	TaxID        string    `db:"tax_id" json:"taxId"`
	Phone        string    `db:"phone" json:"phone"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

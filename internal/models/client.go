package models

import "time"

// ClientStatus enumerates client lifecycle states.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client is a customer record. Email and tax id are the natural keys used by
// import reconciliation: at most one client row is the canonical match for a
// given email or tax id.
type Client struct {
	ID              int64        `db:"id" json:"id"`
	CompanyName     string       `db:"company_name" json:"companyName"`
	TaxID           string       `db:"tax_id" json:"taxId"`
	Email           string       `db:"email" json:"email"`
	Phone           string       `db:"phone" json:"phone"`
	Segment         Segment      `db:"segment" json:"segment"`
	Status          ClientStatus `db:"status" json:"status"`
	Note            string       `db:"note" json:"note"`
	PromoEnabled    bool         `db:"promo_enabled" json:"promoEnabled"`
	PromoPoints     int          `db:"promo_points" json:"promoPoints"`
	PromoTicketCode *string      `db:"promo_ticket_code" json:"promoTicketCode"`
	UserID          *int64       `db:"user_id" json:"userId"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updatedAt"`
}

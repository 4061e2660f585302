package models

import "time"

// Order is one row of imported order history. Orders are a one-way sync from
// the management system: appended by the importer, expired by the retention
// window, never driven through a status machine.
type Order struct {
	ID             int64      `db:"id" json:"id"`
	DocumentNumber string     `db:"document_number" json:"documentNumber"`
	Status         string     `db:"status" json:"status"`
	Cause          string     `db:"cause" json:"cause"`
	CustomerName   string     `db:"customer_name" json:"customerName"`
	CustomerEmail  string     `db:"customer_email" json:"customerEmail"`
	OrderDate      *time.Time `db:"order_date" json:"orderDate"`
	TotalAmount    *float64   `db:"total_amount" json:"totalAmount"`
	ExternalID     string     `db:"external_id" json:"externalId"`
	Notes          string     `db:"notes" json:"notes"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// OrderFilter narrows order history queries for the account endpoint.
type OrderFilter struct {
	CustomerEmail string
	CustomerName  string
	Status        string
	Cause         string
	DateFrom      *time.Time
	DateTo        *time.Time
	IncludeAll    bool
}

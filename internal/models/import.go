package models

import "time"

// PriceListImport records one completed price-list import for status queries.
type PriceListImport struct {
	ID            int64     `db:"id" json:"id"`
	ImportedAt    time.Time `db:"imported_at" json:"importedAt"`
	FileName      string    `db:"file_name" json:"fileName"`
	TotalProducts int       `db:"total_products" json:"totalProducts"`
}

// RowError is a per-row ingestion failure. Row indices are 1-based over the
// non-empty rows of the source file.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ormanet/lumeo-api/internal/models"
)

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Upsert inserts or fully replaces a product by SKU and returns the stored
// row. Every mutable column is overwritten so re-importing the same file is
// idempotent.
func (r *ProductRepository) Upsert(product *models.Product) (*models.Product, error) {
	const q = `
        INSERT INTO products (
            sku, name, description_html, unit, base_price,
            price_distributor, price_reseller, price_reseller10,
            markup_distributor, markup_reseller, markup_reseller10,
            discount_distributor_pct, discount_reseller_pct, discount_reseller10_pct,
            stock_qty, status, image_hd, image_thumb, gallery, extra
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
        ON CONFLICT (sku) DO UPDATE SET
            name = EXCLUDED.name,
            description_html = EXCLUDED.description_html,
            unit = EXCLUDED.unit,
            base_price = EXCLUDED.base_price,
            price_distributor = EXCLUDED.price_distributor,
            price_reseller = EXCLUDED.price_reseller,
            price_reseller10 = EXCLUDED.price_reseller10,
            markup_distributor = EXCLUDED.markup_distributor,
            markup_reseller = EXCLUDED.markup_reseller,
            markup_reseller10 = EXCLUDED.markup_reseller10,
            discount_distributor_pct = EXCLUDED.discount_distributor_pct,
            discount_reseller_pct = EXCLUDED.discount_reseller_pct,
            discount_reseller10_pct = EXCLUDED.discount_reseller10_pct,
            stock_qty = EXCLUDED.stock_qty,
            status = EXCLUDED.status,
            image_hd = EXCLUDED.image_hd,
            image_thumb = EXCLUDED.image_thumb,
            gallery = EXCLUDED.gallery,
            extra = EXCLUDED.extra,
            updated_at = NOW()
        RETURNING *`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var stored models.Product
	if err := stmt.Get(&stored,
		product.SKU,
		product.Name,
		product.DescriptionHTML,
		product.Unit,
		product.BasePrice,
		product.PriceDistributor,
		product.PriceReseller,
		product.PriceReseller10,
		product.MarkupDistributor,
		product.MarkupReseller,
		product.MarkupReseller10,
		product.DiscountDistributorPct,
		product.DiscountResellerPct,
		product.DiscountReseller10Pct,
		product.StockQty,
		product.Status,
		product.ImageHD,
		product.ImageThumb,
		product.Gallery,
		product.Extra,
	); err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetBySKU returns a single product by SKU.
func (r *ProductRepository) GetBySKU(sku string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE sku = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, sku); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a product row exists for the SKU.
func (r *ProductRepository) Exists(sku string) (bool, error) {
	const q = `SELECT COUNT(1) FROM products WHERE sku = $1`
	var n int
	if err := r.db.Get(&n, q, sku); err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetAll returns all products, with an optional status filter. When status is
// an empty string the filter is ignored.
func (r *ProductRepository) GetAll(status string) ([]models.Product, error) {
	const q = `
        SELECT * FROM products
        WHERE ($1 = '' OR status = $1)
        ORDER BY name`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var products []models.Product
	if err := stmt.Select(&products, status); err != nil {
		return nil, err
	}
	return products, nil
}

// Delete deletes a product by SKU.
func (r *ProductRepository) Delete(sku string) error {
	const q = `DELETE FROM products WHERE sku = $1`
	res, err := r.db.Exec(q, sku)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of catalog rows.
func (r *ProductRepository) Count() (int, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(1) FROM products`); err != nil {
		return 0, err
	}
	return n, nil
}

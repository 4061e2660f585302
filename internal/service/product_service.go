package service

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// productStore is the slice of the product repository this service needs.
type productStore interface {
	Upsert(product *models.Product) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	GetAll(status string) ([]models.Product, error)
	Delete(sku string) error
}

// ProductService handles catalog business logic for manual edits. Bulk writes
// go through the price-list import pipeline instead.
type ProductService struct {
	repo productStore
}

// NewProductService constructs a ProductService.
func NewProductService(repo productStore) *ProductService {
	return &ProductService{repo: repo}
}

// Save upserts a product. A missing SKU gets a generated one so ad-hoc
// catalog entries created from the admin UI are still addressable.
func (s *ProductService) Save(product *models.Product) (*models.Product, error) {
	product.SKU = strings.TrimSpace(product.SKU)
	if product.SKU == "" {
		product.SKU = uuid.NewString()
	}
	if product.Unit == "" {
		product.Unit = "pz"
	}
	if product.Status != models.ProductStatusActive && product.Status != models.ProductStatusUnavailable {
		product.Status = models.ProductStatusUnavailable
	}
	return s.repo.Upsert(product)
}

// Get returns a product by SKU.
func (s *ProductService) Get(sku string) (*models.Product, error) {
	product, err := s.repo.GetBySKU(sku)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns products ordered by name, with an optional status filter.
func (s *ProductService) List(status string) ([]models.Product, error) {
	products, err := s.repo.GetAll(status)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Delete removes a product by SKU.
func (s *ProductService) Delete(sku string) error {
	if err := s.repo.Delete(sku); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/service"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// ProductHandler exposes catalog reads and admin catalog edits.
type ProductHandler struct {
	productService *service.ProductService
	importService  *service.PriceListImportService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService, importService *service.PriceListImportService) *ProductHandler {
	return &ProductHandler{productService: productService, importService: importService}
}

// GetProducts lists the catalog ordered by name. status filters on
// active/unavailable when provided.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.List(c.Query("status"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load products")
		return
	}
	utils.Success(c, 200, "Products retrieved", gin.H{"products": products})
}

// GetProduct returns a single product by SKU.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Param("sku"))
	if err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load product")
		return
	}
	utils.Success(c, 200, "Product retrieved", gin.H{"product": product})
}

// SaveProduct upserts a product from the admin UI.
func (h *ProductHandler) SaveProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Malformed product payload")
		return
	}

	saved, err := h.productService.Save(&product)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save product")
		return
	}
	utils.Success(c, 200, "Product saved", gin.H{"product": saved})
}

// DeleteProduct removes a product by SKU.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Param("sku")); err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// ImportPriceList ingests the price list workbook uploaded as multipart.
func (h *ProductHandler) ImportPriceList(c *gin.Context) {
	data, fileName, ok := readUpload(c, "file", "price_list_file", "price_list")
	if !ok {
		return
	}

	result, err := h.importService.Import(c.Request.Context(), data, fileName)
	if err != nil {
		respondIngestError(c, err)
		return
	}
	utils.Success(c, 200, "Price list imported", result)
}

// GetImportStatus returns the timestamp of the last successful price list
// import.
func (h *ProductHandler) GetImportStatus(c *gin.Context) {
	at, err := h.importService.Status(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load import status")
		return
	}
	utils.Success(c, 200, "Import status retrieved", gin.H{"lastImportAt": at})
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/service"
)

// ProductController handles HTTP requests for the off-chain metadata documents.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// StoreProductRequest represents the request body for storing product metadata.
type StoreProductRequest struct {
	TransactionHash string `json:"transactionHash" binding:"required"`
	Manufacturer    string `json:"manufacturer" binding:"required"`
	Name            string `json:"name" binding:"required"`
	BatchID         string `json:"batchId" binding:"required"`
	Wholesaler      string `json:"wholesaler" binding:"required"`
	Retailer        string `json:"retailer" binding:"required"`
	Description     string `json:"description"`
	ProductID       uint64 `json:"productId"`
	CreatedAt       string `json:"createdAt"`
	QRCode          string `json:"qrCode"`
}

// StoreProduct handles the HTTP POST request for storing metadata of a mined
// creation transaction.
func (pc *ProductController) StoreProduct(c *gin.Context) {
	var req StoreProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	record := &model.MetadataRecord{
		TransactionHash: req.TransactionHash,
		Manufacturer:    req.Manufacturer,
		Name:            req.Name,
		BatchID:         req.BatchID,
		Wholesaler:      req.Wholesaler,
		Retailer:        req.Retailer,
		Description:     req.Description,
		ProductID:       req.ProductID,
		CreatedAt:       req.CreatedAt,
		QRCode:          req.QRCode,
	}

	created, err := pc.productService.StoreMetadata(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product stored successfully",
		"data":    created,
	})
}

// ProductByTransaction handles the HTTP GET request for fetching metadata by
// creation transaction hash.
func (pc *ProductController) ProductByTransaction(c *gin.Context) {
	record, err := pc.productService.MetadataByTransaction(c.Request.Context(), c.Param("hash"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": record,
	})
}

// ProductsByOwner handles the HTTP GET request for listing metadata documents
// filed by a manufacturer address.
func (pc *ProductController) ProductsByOwner(c *gin.Context) {
	records, err := pc.productService.MetadataByManufacturer(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(records),
		"data":    records,
	})
}

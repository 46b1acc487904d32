package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supplyonchain/tracker/internal/metrics"
	"github.com/supplyonchain/tracker/internal/qr"
	"github.com/supplyonchain/tracker/internal/service"
)

// TrackingController handles HTTP requests that touch ledger state: the
// dashboard, on-chain product operations and label scanning.
type TrackingController struct {
	tracking *service.TrackingService
	chain    *service.ChainService
}

// NewTrackingController creates a new TrackingController.
func NewTrackingController(tracking *service.TrackingService, chain *service.ChainService) *TrackingController {
	return &TrackingController{
		tracking: tracking,
		chain:    chain,
	}
}

// Dashboard handles the HTTP GET request for an identity's full product
// portfolio: owned plus created, joined with metadata.
func (tc *TrackingController) Dashboard(c *gin.Context) {
	views, err := tc.tracking.Reconcile(c.Request.Context(), c.Param("address"))
	if err != nil {
		metrics.ReconciliationRuns.WithLabelValues(metrics.OutcomeError).Inc()
		respondError(c, err)
		return
	}
	metrics.ReconciliationRuns.WithLabelValues(metrics.OutcomeOK).Inc()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(views),
		"data":    views,
	})
}

// ChainProduct handles the HTTP GET request for a single merged product view.
func (tc *TrackingController) ChainProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
		return
	}

	view, err := tc.tracking.ProductDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": view,
	})
}

// RegisterProductRequest represents the request body for registering a product.
type RegisterProductRequest struct {
	Name        string `json:"name" binding:"required"`
	BatchID     string `json:"batchId" binding:"required"`
	Wholesaler  string `json:"wholesaler" binding:"required"`
	Retailer    string `json:"retailer" binding:"required"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// RegisterProduct handles the HTTP POST request for registering a product on
// the ledger.
func (tc *TrackingController) RegisterProduct(c *gin.Context) {
	var req RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := tc.chain.RegisterProduct(c.Request.Context(), service.RegisterProductInput{
		Name:        req.Name,
		BatchID:     req.BatchID,
		Wholesaler:  req.Wholesaler,
		Retailer:    req.Retailer,
		Description: req.Description,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"transactionHash": result.TransactionHash,
		"data":            result.Metadata,
	})
}

// TransferProductRequest represents the request body for an ownership transfer.
type TransferProductRequest struct {
	CallerAddress   string `json:"callerAddress" binding:"required"`
	ConsumerAddress string `json:"consumerAddress"`
}

// TransferProduct handles the HTTP POST request for handing a product to the
// next party in the chain.
func (tc *TrackingController) TransferProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
		return
	}

	var req TransferProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := tc.chain.TransferProduct(c.Request.Context(), id, req.CallerAddress, req.ConsumerAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"transactionHash": result.TransactionHash,
		"recipient":       result.Recipient,
	})
}

// ResolveScanRequest represents a decoded label payload submitted for
// resolution.
type ResolveScanRequest struct {
	TransactionHash string `json:"transactionHash"`
	BatchID         string `json:"batchId"`
	Manufacturer    string `json:"manufacturer"`
	ID              uint64 `json:"id"`
}

// ResolveScan handles the HTTP POST request for mapping a scanned payload to
// its merged product view.
func (tc *TrackingController) ResolveScan(c *gin.Context) {
	var req ResolveScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	id, meta, err := tc.tracking.ResolveProductID(c.Request.Context(), qr.Payload{
		TransactionHash: req.TransactionHash,
		BatchID:         req.BatchID,
		Manufacturer:    req.Manufacturer,
		ID:              req.ID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnresolved) {
			metrics.ScansResolved.WithLabelValues(metrics.OutcomeUnresolved).Inc()
			// The label may still be readable: serve the descriptive
			// fields of the metadata document when one was found.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Product could not be resolved",
				"data":    meta,
			})
			return
		}
		metrics.ScansResolved.WithLabelValues(metrics.OutcomeError).Inc()
		respondError(c, err)
		return
	}

	view, err := tc.tracking.ProductDetail(c.Request.Context(), id)
	if err != nil {
		metrics.ScansResolved.WithLabelValues(metrics.OutcomeError).Inc()
		respondError(c, err)
		return
	}
	metrics.ScansResolved.WithLabelValues(metrics.OutcomeOK).Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"productId": id,
		"product":   view,
	})
}

// DecodeScanRequest represents an uploaded label image.
type DecodeScanRequest struct {
	Image string `json:"image" binding:"required"`
}

// DecodeScan handles the HTTP POST request for reading a QR payload out of
// an uploaded label image (base64 data URI).
func (tc *TrackingController) DecodeScan(c *gin.Context) {
	var req DecodeScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	raw, err := qr.DecodeDataURI(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	text, err := qr.Decode(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "No readable QR code in image"})
		return
	}

	payload, err := qr.ParsePayload(text)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "QR code does not carry a product payload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payload": payload,
	})
}

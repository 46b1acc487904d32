package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyonchain/tracker/internal/config"
	"github.com/supplyonchain/tracker/internal/service"
)

// Controller handles general HTTP requests.
type Controller struct {
	config *config.Config
}

// New creates a new Controller with the given configuration.
func New(config *config.Config) *Controller {
	return &Controller{
		config: config,
	}
}

// Ping handles the HTTP GET request for health check endpoint.
func (con *Controller) Ping(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

// respondError maps service errors onto HTTP status codes. Upstream
// failures deliberately map to 502 so callers can tell "you sent garbage"
// from "the ledger is down".
func respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	var upstream *service.UpstreamError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validation.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
	case errors.Is(err, service.ErrUnresolved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Product could not be resolved"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized for this transfer"})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Upstream system unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

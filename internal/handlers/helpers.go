package handlers

import (
	"errors"
	"net/http"

	"shopledger/internal/catalog"
	"shopledger/internal/models"
	"shopledger/internal/sales"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Everything is
// request-scoped: the caller corrects the input and resubmits.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, sales.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, sales.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func currentSessionID(c *gin.Context) string {
	if v, ok := c.Get("sessionID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

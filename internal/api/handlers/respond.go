package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moizhassan7/crisp-cms/internal/content"
	"github.com/moizhassan7/crisp-cms/internal/store"
)

// writeError maps engine errors onto HTTP statuses. The error text is the
// user-visible message the admin forms display inline.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, content.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

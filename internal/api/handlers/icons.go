package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moizhassan7/crisp-cms/internal/icons"
)

// IconHandler backs the admin icon picker: the full registered name list,
// filtered by a case-insensitive substring query.
type IconHandler struct{}

func NewIconHandler() *IconHandler { return &IconHandler{} }

func (h *IconHandler) List(c *gin.Context) {
	names := icons.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"icons": names})
}

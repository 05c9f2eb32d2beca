package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/services"
)

type UploadHandler struct {
	uploads *services.UploadService
	logger  *zap.Logger
}

func NewUploadHandler(uploads *services.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger.With(zap.String("handler", "uploads")),
	}
}

// Upload accepts one multipart image under the "image" field and returns
// the URL to put into the document being edited. The document write is a
// separate later call; a failure there leaves the uploaded blob behind.
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.uploads.UploadImage(
		c.Request.Context(),
		c.Param("folder"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

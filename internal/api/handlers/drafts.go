package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/content"
)

// DraftHandler exposes the draft-session engine: open a mirror of a
// document (or a blank default), apply scalar and nested-list mutations,
// then submit the whole thing in one write.
type DraftHandler struct {
	drafts *content.Drafts
	logger *zap.Logger
}

func NewDraftHandler(drafts *content.Drafts, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{
		drafts: drafts,
		logger: logger.With(zap.String("handler", "drafts")),
	}
}

type openDraftRequest struct {
	Collection string `json:"collection" binding:"required"`
	DocID      string `json:"docId"`
}

func (h *DraftHandler) Open(c *gin.Context) {
	var req openDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "collection is required"})
		return
	}

	sess, err := h.drafts.Open(c.Request.Context(), req.Collection, req.DocID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *DraftHandler) Get(c *gin.Context) {
	sess, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *DraftHandler) Apply(c *gin.Context) {
	var op content.Op
	if err := c.ShouldBindJSON(&op); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operation: " + err.Error()})
		return
	}

	if err := h.drafts.Apply(c.Param("id"), op); err != nil {
		writeError(c, err)
		return
	}

	sess, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *DraftHandler) Submit(c *gin.Context) {
	id, err := h.drafts.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *DraftHandler) Discard(c *gin.Context) {
	h.drafts.Discard(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"discarded": true})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/content"
)

// ContentHandler serves the admin CRUD surface for one content type. The
// six content types share this one implementation; only the controller
// differs.
type ContentHandler[T any] struct {
	ctrl   *content.Controller[T]
	logger *zap.Logger
}

func NewContentHandler[T any](ctrl *content.Controller[T], logger *zap.Logger) *ContentHandler[T] {
	return &ContentHandler[T]{
		ctrl:   ctrl,
		logger: logger.With(zap.String("handler", ctrl.Collection())),
	}
}

func (h *ContentHandler[T]) List(c *gin.Context) {
	entries, err := h.ctrl.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *ContentHandler[T]) Get(c *gin.Context) {
	item, err := h.ctrl.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "item": item})
}

func (h *ContentHandler[T]) Create(c *gin.Context) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	id, err := h.ctrl.Create(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ContentHandler[T]) Update(c *gin.Context) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.ctrl.Update(c.Request.Context(), id, draft); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete performs exactly one store delete. The admin list view removes
// the row only on a 200, so the displayed list and the store stay
// consistent on this path.
func (h *ContentHandler[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.ctrl.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

// SingletonHandler serves the fixed-key about document: a GET that seeds
// the default shape when the document does not exist yet, and an upsert
// PUT.
type SingletonHandler[T any] struct {
	ctrl   *content.Controller[T]
	logger *zap.Logger
}

func NewSingletonHandler[T any](ctrl *content.Controller[T], logger *zap.Logger) *SingletonHandler[T] {
	return &SingletonHandler[T]{
		ctrl:   ctrl,
		logger: logger.With(zap.String("handler", ctrl.Collection())),
	}
}

func (h *SingletonHandler[T]) Get(c *gin.Context) {
	item, exists, err := h.ctrl.GetSingleton(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "exists": exists})
}

func (h *SingletonHandler[T]) Put(c *gin.Context) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.ctrl.UpsertSingleton(c.Request.Context(), draft); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

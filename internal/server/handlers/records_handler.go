package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

// RecordStore is the CRUD surface of one record collection.
type RecordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, doc T) error
	Update(ctx context.Context, id string, doc T) error
	Delete(ctx context.Context, id string) error
}

// Identifiable is satisfied by pointers to records keyed by a string id.
type Identifiable[T any] interface {
	*T
	GetID() string
	SetID(id string)
}

// RecordHandler exposes one record collection over REST.
type RecordHandler[T any, PT Identifiable[T]] struct {
	store  RecordStore[T]
	logger *zap.Logger
	newID  func() string
}

// NewRecordHandler constructs the handler for one collection.
func NewRecordHandler[T any, PT Identifiable[T]](store RecordStore[T], logger *zap.Logger) *RecordHandler[T, PT] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler[T, PT]{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// List returns every record of the collection.
func (h *RecordHandler[T, PT]) List(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Get returns the record named by the :id path parameter.
func (h *RecordHandler[T, PT]) Get(c *gin.Context) {
	record, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create stores a new record. A missing id is generated.
func (h *RecordHandler[T, PT]) Create(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if PT(&record).GetID() == "" {
		PT(&record).SetID(h.newID())
	}
	if err := models.Validate(record); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.store.Create(c.Request.Context(), record); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Update replaces the record named by :id. The body's id is ignored.
func (h *RecordHandler[T, PT]) Update(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := c.Param("id")
	PT(&record).SetID(id)
	if err := models.Validate(record); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.store.Update(c.Request.Context(), id, record); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete removes the record named by :id.
func (h *RecordHandler[T, PT]) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Bukkimarh/cinetrends/db/models"
	"github.com/gin-gonic/gin"
)

type SummaryStore interface {
	GetSummariesByEntity(ctx context.Context, entity string) ([]models.Summary, error)
	GetRecentSummaries(ctx context.Context, limit, skip int64) ([]models.Summary, error)
	GetSummariesByRun(ctx context.Context, runID string) ([]models.Summary, error)
}

type Handler struct {
	store SummaryStore
}

func NewHandler(store SummaryStore) *Handler {
	return &Handler{store: store}
}

// GetSummariesByEntity handles GET /summaries?entity=
func (h *Handler) GetSummariesByEntity(c *gin.Context) {
	entity := c.Query("entity")
	if entity == "" {
		c.JSON(400, gin.H{"error": "entity is required"})
		return
	}

	summaries, err := h.store.GetSummariesByEntity(c, entity)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetRecentSummaries handles GET /summaries/recent
func (h *Handler) GetRecentSummaries(c *gin.Context) {
	limit := 20
	skip := 0

	if c.Query("limit") != "" {
		limitInt, err := strconv.Atoi(c.Query("limit"))
		if err == nil && limitInt > 0 {
			limit = limitInt
		}
	}

	if c.Query("skip") != "" {
		skipInt, err := strconv.Atoi(c.Query("skip"))
		if err == nil && skipInt >= 0 {
			skip = skipInt
		}
	}

	summaries, err := h.store.GetRecentSummaries(c, int64(limit), int64(skip))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetSummariesByRun handles GET /runs/:id
func (h *Handler) GetSummariesByRun(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"error": "id is required"})
		return
	}

	summaries, err := h.store.GetSummariesByRun(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

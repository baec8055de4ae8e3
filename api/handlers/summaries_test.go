package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bukkimarh/cinetrends/db/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	summaries []models.Summary
	err       error
}

func (f *fakeStore) GetSummariesByEntity(ctx context.Context, entity string) ([]models.Summary, error) {
	return f.summaries, f.err
}

func (f *fakeStore) GetRecentSummaries(ctx context.Context, limit, skip int64) ([]models.Summary, error) {
	if limit < int64(len(f.summaries)) {
		return f.summaries[:limit], f.err
	}
	return f.summaries, f.err
}

func (f *fakeStore) GetSummariesByRun(ctx context.Context, runID string) ([]models.Summary, error) {
	return f.summaries, f.err
}

func newTestRouter(store SummaryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(store)
	r.GET("/summaries", h.GetSummariesByEntity)
	r.GET("/summaries/recent", h.GetRecentSummaries)
	r.GET("/runs/:id", h.GetSummariesByRun)
	return r
}

func TestGetSummariesByEntity(t *testing.T) {
	avg := 7.0
	store := &fakeStore{
		summaries: []models.Summary{
			{Entity: "Will Smith", YearRange: "2020-2024", MovieCount: 2, AvgRating: &avg, TotalReviews: 5},
		},
	}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/summaries?entity=Will+Smith", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []models.Summary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res, 1)
	assert.Equal(t, "Will Smith", res[0].Entity)
	assert.Equal(t, 7.0, *res[0].AvgRating)
}

func TestGetSummariesByEntityRequiresEntity(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/summaries", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSummariesByEntityNotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{err: fmt.Errorf("no summaries found for entity Nobody")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/summaries?entity=Nobody", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecentSummariesLimit(t *testing.T) {
	store := &fakeStore{
		summaries: []models.Summary{
			{Entity: "Comedy", YearRange: "2000-2009"},
			{Entity: "Comedy", YearRange: "2010-2019"},
			{Entity: "Action", YearRange: "2000-2009"},
		},
	}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/summaries/recent?limit=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []models.Summary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res, 2)
}

func TestUndefinedAverageStaysNull(t *testing.T) {
	store := &fakeStore{
		summaries: []models.Summary{
			{Entity: "Obscure Genre", YearRange: "1950-1959", MovieCount: 0},
		},
	}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/summaries?entity=Obscure+Genre", nil)
	r.ServeHTTP(w, req)

	var res []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Nil(t, res[0]["avg_rating"], "an undefined average serializes as null, not 0")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler holds shared dependencies (log store, snapshot cache, clock) for
// all route handlers. The clock is injectable so "today" is pinnable in tests.
type Handler struct {
	store    LogStore
	cache    *snapshotCache
	notifier *notifier
	now      func() time.Time
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// storeError maps a load/write failure to a status code. Store outages get
// 503 so callers can distinguish "the source is down" from an engine bug and
// decide to show stale data instead.
func storeError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, errStoreUnavailable) {
		apiError(c, http.StatusServiceUnavailable, "log store unavailable")
		return
	}
	apiError(c, http.StatusInternalServerError, fallback)
}

// cachedSnapshot serves a fresh-enough snapshot from the cache, loading from
// the store on a miss. Failed loads never populate the cache.
func (h *Handler) cachedSnapshot(ctx context.Context) (snapshot, error) {
	key := h.store.SourceID()
	if snap, ok := h.cache.Get(key); ok {
		return snap, nil
	}
	snap, err := loadSnapshot(ctx, h.store)
	if err != nil {
		return snapshot{}, err
	}
	h.cache.Put(key, snap)
	return snap, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/summary", h.getSummary)
	api.GET("/report", h.getReport)
	api.POST("/logs/macros", h.createMacroEntry)
	api.POST("/logs/workouts", h.createWorkoutEntry)
	api.POST("/weight", h.upsertWeight)
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.POST("/notify/report", h.notifyReport)
	api.POST("/notify/reminder", h.notifyReminder)
}

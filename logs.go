package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// createMacroEntry appends one meal entry to the macro log.
// POST /api/logs/macros. Defaults date to today if omitted — new entries from
// this API are written in canonical form; only legacy rows need the mixed
// date parsing at read time.
func (h *Handler) createMacroEntry(c *gin.Context) {
	var body createMacroRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Meal) == "" {
		apiError(c, http.StatusBadRequest, "meal is required")
		return
	}
	if body.ProteinG < 0 || body.CarbsG < 0 || body.FatsG < 0 {
		apiError(c, http.StatusBadRequest, "macro grams must not be negative")
		return
	}
	if body.Date == "" {
		body.Date = h.now().Format("2006-01-02")
	}

	entry, err := h.store.AppendMacro(c, body)
	if err != nil {
		storeError(c, err, "failed to create macro entry")
		return
	}
	// Read-after-write: the next summary must include this entry.
	h.cache.Invalidate()

	c.JSON(http.StatusCreated, entry)
}

// createWorkoutEntry appends one exercise session to the workout log.
// POST /api/logs/workouts.
func (h *Handler) createWorkoutEntry(c *gin.Context) {
	var body createWorkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Exercise) == "" {
		apiError(c, http.StatusBadRequest, "exercise is required")
		return
	}
	if body.CaloriesBurned < 0 {
		apiError(c, http.StatusBadRequest, "calories_burned must not be negative")
		return
	}
	if body.Date == "" {
		body.Date = h.now().Format("2006-01-02")
	}

	entry, err := h.store.AppendWorkout(c, body)
	if err != nil {
		storeError(c, err, "failed to create workout entry")
		return
	}
	h.cache.Invalidate()

	c.JSON(http.StatusCreated, entry)
}

// upsertWeight creates or replaces the weight reading for a date — one
// authoritative value per date, later writes win.
// POST /api/weight. Body: { "date": "YYYY-MM-DD", "weight_kg": 84.2 }.
func (h *Handler) upsertWeight(c *gin.Context) {
	var body upsertWeightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = h.now().Format("2006-01-02")
	}
	if body.WeightKG <= 0 || body.WeightKG > 999.9 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 999.9")
		return
	}

	entry, err := h.store.UpsertWeight(c, body)
	if err != nil {
		storeError(c, err, "failed to upsert weight entry")
		return
	}
	h.cache.Invalidate()

	c.JSON(http.StatusCreated, entry)
}

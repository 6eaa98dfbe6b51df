package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// buildSummary runs the full derivation pipeline over one snapshot:
// normalize → aggregate → fuse → derive. Pure apart from the injected clock;
// calling it twice on the same snapshot yields identical output.
func buildSummary(snap snapshot, now func() time.Time) (summaryResponse, error) {
	norm := newDateNormalizer(now)

	macroEntries, skippedM := normalizeMacros(snap.Macros, norm)
	workoutEntries, skippedW := normalizeWorkouts(snap.Workouts, norm)
	weightReadings, skippedG := normalizeWeights(snap.Weights, norm)

	records, err := fuse(
		aggregateMacros(macroEntries),
		aggregateWorkouts(workoutEntries),
		latestWeightPerDay(weightReadings),
	)
	if err != nil {
		return summaryResponse{}, err
	}

	view := todayOrLatestWorkouts(workoutEntries, now())
	viewOut := make([]workoutViewEntry, 0, len(view))
	for _, e := range view {
		viewOut = append(viewOut, workoutViewEntry{
			Date:           DateOnly{e.Day},
			Exercise:       e.Exercise,
			CaloriesBurned: e.Burned,
		})
	}

	return summaryResponse{
		Days:        records,
		Metrics:     deriveMetrics(records, snap.Profile),
		WorkoutView: viewOut,
		SkippedRows: skippedM + skippedW + skippedG,
	}, nil
}

// getSummary returns the unified timeline, the metric bundle, and the
// today-or-latest workout view — everything the renderer consumes.
// GET /api/summary. An empty timeline ("awaiting first entry") is a valid
// 200 response, not an error.
func (h *Handler) getSummary(c *gin.Context) {
	snap, err := h.cachedSnapshot(c)
	if err != nil {
		storeError(c, err, "failed to load snapshot")
		return
	}

	resp, err := buildSummary(snap, h.now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to build summary")
		return
	}

	c.JSON(http.StatusOK, resp)
}

package main

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// getReport returns the timeline slice, stats, and insight lines for a date
// range — the input the document generator turns into a PDF.
// GET /api/report?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
func (h *Handler) getReport(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	startDay, err := time.Parse("2006-01-02", start)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	endDay, err := time.Parse("2006-01-02", end)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if startDay.After(endDay) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	snap, err := h.cachedSnapshot(c)
	if err != nil {
		storeError(c, err, "failed to load snapshot")
		return
	}
	summary, err := buildSummary(snap, h.now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to build summary")
		return
	}

	c.JSON(http.StatusOK, buildReport(summary, truncateToDay(startDay), truncateToDay(endDay)))
}

// buildReport slices the summary to [start, end] and derives the range stats
// and insight lines. Metrics stay whole-timeline — the report frames the
// range against the current state, not a re-derivation from partial history.
func buildReport(summary summaryResponse, start, end time.Time) reportResponse {
	// Ensure an empty range serializes as [] rather than null.
	days := []dayRecord{}
	for _, d := range summary.Days {
		if d.Date.Time.Before(start) || d.Date.Time.After(end) {
			continue
		}
		days = append(days, d)
	}

	var stats reportStats
	stats.DaysCovered = len(days)
	for _, d := range days {
		stats.AvgNetKcal += d.NetCalories
		stats.AvgBurnedKcal += d.CaloriesBurned
		if isKetoDay(d) {
			stats.KetoDays++
		}
	}
	if len(days) > 0 {
		stats.AvgNetKcal = round1(stats.AvgNetKcal / float64(len(days)))
		stats.AvgBurnedKcal = round1(stats.AvgBurnedKcal / float64(len(days)))
		stats.StartWeightKG = days[0].WeightKG
		stats.EndWeightKG = days[len(days)-1].WeightKG
	}

	return reportResponse{
		Start:    DateOnly{start},
		End:      DateOnly{end},
		Days:     days,
		Metrics:  summary.Metrics,
		Stats:    stats,
		Insights: reportInsights(stats, summary.Metrics),
	}
}

// reportInsights renders the stat lines the PDF prints verbatim.
func reportInsights(stats reportStats, metrics metricsBundle) []string {
	var insights []string

	if stats.AvgNetKcal < 0 {
		insights = append(insights,
			fmt.Sprintf("Fat loss engine active: average daily deficit of %d kcal.", int(math.Abs(stats.AvgNetKcal))))
	} else {
		insights = append(insights, "Anabolic phase: net positive caloric intake detected.")
	}

	direction := "loss"
	if metrics.WeeklyProjectionKG > 0 {
		direction = "gain"
	}
	insights = append(insights,
		fmt.Sprintf("Projection: current rate of %s is %.2f kg/week.", direction, metrics.WeeklyProjAbsKG))

	if metrics.IsKetoDay {
		insights = append(insights, "Ketosis protocol: strict adherence detected.")
	} else {
		insights = append(insights, "Ketosis protocol: glucose-dominant metabolism.")
	}

	return insights
}

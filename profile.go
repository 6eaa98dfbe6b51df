package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// validGenders is the set of values the Mifflin-St Jeor constant is defined
// for. The formula is binary by construction; reject anything else rather
// than silently computing garbage.
var validGenders = map[string]bool{
	"Male":   true,
	"Female": true,
}

// getProfile returns the single active profile.
// GET /api/profile. 404 until the profile has been configured.
func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.store.LoadProfile(c)
	if err != nil {
		storeError(c, err, "failed to fetch profile")
		return
	}
	if p == nil {
		apiError(c, http.StatusNotFound, "profile not configured")
		return
	}

	c.JSON(http.StatusOK, p)
}

// putProfile replaces the single active profile.
// PUT /api/profile. Body: { "gender": "Male"|"Female", "height_cm", "age",
// "goal_weight_kg"? }. Omitting goal_weight_kg clears the goal.
func (h *Handler) putProfile(c *gin.Context) {
	var body putProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validGenders[body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be Male or Female")
		return
	}
	if body.HeightCM <= 0 || body.HeightCM > 300 {
		apiError(c, http.StatusBadRequest, "height_cm must be between 0 and 300")
		return
	}
	if body.Age <= 0 || body.Age > 130 {
		apiError(c, http.StatusBadRequest, "age must be between 0 and 130")
		return
	}
	if body.GoalWeightKG != nil && (*body.GoalWeightKG <= 0 || *body.GoalWeightKG > 999.9) {
		apiError(c, http.StatusBadRequest, "goal_weight_kg must be between 0 and 999.9")
		return
	}

	saved, err := h.store.SaveProfile(c, userProfile{
		Gender:       body.Gender,
		HeightCM:     body.HeightCM,
		Age:          body.Age,
		GoalWeightKG: body.GoalWeightKG,
	})
	if err != nil {
		storeError(c, err, "failed to save profile")
		return
	}
	h.cache.Invalidate()

	c.JSON(http.StatusOK, saved)
}

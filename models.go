package main

import (
	"time"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

/* ─── Raw store rows ─────────────────────────────────────────────────── */

// weightRow mirrors one row of the weights log exactly as the store holds it.
// Date is an opaque string in whatever format the source used — normalization
// happens in the engine, never in the store.
type weightRow struct {
	ID        string     `json:"id" db:"id"`
	Date      string     `json:"date" db:"date"`
	WeightKG  float64    `json:"weight_kg" db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// macroRow is one logged meal. Multiple rows per day are expected; the
// aggregator sums them.
type macroRow struct {
	ID        string     `json:"id" db:"id"`
	Date      string     `json:"date" db:"date"`
	Meal      string     `json:"meal" db:"meal"`
	ProteinG  float64    `json:"protein_g" db:"protein_g"`
	CarbsG    float64    `json:"carbs_g" db:"carbs_g"`
	FatsG     float64    `json:"fats_g" db:"fats_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// workoutRow is one logged exercise session.
type workoutRow struct {
	ID             string     `json:"id" db:"id"`
	Date           string     `json:"date" db:"date"`
	Exercise       string     `json:"exercise" db:"exercise"`
	CaloriesBurned float64    `json:"calories_burned" db:"calories_burned"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}

// userProfile is the single active profile for the engine. GoalWeightKG is
// optional — without it the ETA metric reports as unavailable.
type userProfile struct {
	Gender       string   `json:"gender" db:"gender"`
	HeightCM     float64  `json:"height_cm" db:"height_cm"`
	Age          int      `json:"age" db:"age"`
	GoalWeightKG *float64 `json:"goal_weight_kg" db:"goal_weight_kg"`
}

/* ─── Normalized / aggregated forms ──────────────────────────────────── */

// macroEntry is a macroRow whose date survived normalization.
type macroEntry struct {
	Day      time.Time
	ProteinG float64
	CarbsG   float64
	FatsG    float64
}

// workoutEntry is a workoutRow whose date survived normalization. Exercise is
// kept because the today-or-latest view is full resolution, not aggregated.
type workoutEntry struct {
	Day      time.Time
	Exercise string
	Burned   float64
}

// weightReading is a weightRow whose date survived normalization.
type weightReading struct {
	Day time.Time
	KG  float64
}

// macroDay and workoutDay are one-row-per-date category aggregates.
type macroDay struct {
	Day      time.Time
	ProteinG float64
	CarbsG   float64
	FatsG    float64
}

type workoutDay struct {
	Day    time.Time
	Burned float64
}

/* ─── Unified timeline ───────────────────────────────────────────────── */

// dayRecord is one day of the fused timeline. WeightKG is nil when no weight
// has ever been logged on or before this date; WeightLogged distinguishes a
// reading taken on this exact date from a forward-filled one.
type dayRecord struct {
	Date           DateOnly `json:"date"`
	ProteinG       float64  `json:"protein_g"`
	CarbsG         float64  `json:"carbs_g"`
	FatsG          float64  `json:"fats_g"`
	CaloriesIn     float64  `json:"calories_in"`
	CaloriesBurned float64  `json:"calories_burned"`
	NetCalories    float64  `json:"net_calories"`
	WeightKG       *float64 `json:"weight_kg"`
	WeightLogged   bool     `json:"weight_logged"`
}

// metricsBundle is the derived metric set. Pointer fields are nil when the
// metric cannot be computed (missing profile, no weight history, zero
// maintenance, no achievable deficit) — consumers must treat nil as
// "unavailable", never as zero.
type metricsBundle struct {
	MaintenanceKcal    *int     `json:"maintenance_kcal"`
	NetKcal            float64  `json:"net_kcal"`
	DeficitPct         *float64 `json:"deficit_pct"`
	IsKetoDay          bool     `json:"is_keto_day"`
	WeeklyProjectionKG float64  `json:"weekly_projection_kg"`
	WeeklyProjAbsKG    float64  `json:"weekly_projection_abs_kg"`
	ETADays            *int     `json:"eta_days"`
	CurrentStreak      int      `json:"current_streak"`
	BestStreak         int      `json:"best_streak"`
	LatestWeightKG     *float64 `json:"latest_weight_kg"`
	DayCount           int      `json:"day_count"`
}

// workoutViewEntry is one row of the today-or-latest workout view handed to
// the renderer.
type workoutViewEntry struct {
	Date           DateOnly `json:"date"`
	Exercise       string   `json:"exercise"`
	CaloriesBurned float64  `json:"calories_burned"`
}

/* ─── API request / response shapes ──────────────────────────────────── */

// summaryResponse is the full engine output consumed by the renderer.
type summaryResponse struct {
	Days        []dayRecord        `json:"days"`
	Metrics     metricsBundle      `json:"metrics"`
	WorkoutView []workoutViewEntry `json:"workout_view"`
	SkippedRows int                `json:"skipped_rows"`
}

// createMacroRequest is the request body for POST /api/logs/macros.
type createMacroRequest struct {
	Date     string  `json:"date"`
	Meal     string  `json:"meal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// createWorkoutRequest is the request body for POST /api/logs/workouts.
type createWorkoutRequest struct {
	Date           string  `json:"date"`
	Exercise       string  `json:"exercise"`
	CaloriesBurned float64 `json:"calories_burned"`
}

// upsertWeightRequest is the request body for POST /api/weight.
type upsertWeightRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

// putProfileRequest is the request body for PUT /api/profile. GoalWeightKG
// stays a pointer so clearing the goal is representable.
type putProfileRequest struct {
	Gender       string   `json:"gender"`
	HeightCM     float64  `json:"height_cm"`
	Age          int      `json:"age"`
	GoalWeightKG *float64 `json:"goal_weight_kg"`
}

// reportStats summarizes a date range for the report generator.
type reportStats struct {
	DaysCovered   int      `json:"days_covered"`
	AvgNetKcal    float64  `json:"avg_net_kcal"`
	AvgBurnedKcal float64  `json:"avg_burned_kcal"`
	KetoDays      int      `json:"keto_days"`
	StartWeightKG *float64 `json:"start_weight_kg"`
	EndWeightKG   *float64 `json:"end_weight_kg"`
}

// reportResponse is the payload for GET /api/report, consumed by the PDF
// report generator.
type reportResponse struct {
	Start    DateOnly      `json:"start"`
	End      DateOnly      `json:"end"`
	Days     []dayRecord   `json:"days"`
	Metrics  metricsBundle `json:"metrics"`
	Stats    reportStats   `json:"stats"`
	Insights []string      `json:"insights"`
}

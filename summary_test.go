package main

import (
	"reflect"
	"testing"
)

// testSnapshot builds a snapshot exercising every pipeline stage: mixed date
// formats, same-day duplicates, a bad row, and partial categories.
func testSnapshot() snapshot {
	kg := 80.0
	return snapshot{
		Weights: []weightRow{
			{ID: "w1", Date: "2026-08-10", WeightKG: 84.2},
			{ID: "w2", Date: "12/08/2026", WeightKG: 83.9},
		},
		Macros: []macroRow{
			{ID: "m1", Date: "2026-08-10", Meal: "breakfast", ProteinG: 30, CarbsG: 40, FatsG: 15},
			{ID: "m2", Date: "10/08/2026", Meal: "dinner", ProteinG: 50, CarbsG: 20, FatsG: 35},
			{ID: "m3", Date: "garbage", Meal: "lunch", ProteinG: 99},
			{ID: "m4", Date: "2026-08-12", Meal: "lunch", ProteinG: 40, CarbsG: 10, FatsG: 20},
		},
		Workouts: []workoutRow{
			{ID: "k1", Date: "11 Aug 2026", Exercise: "run", CaloriesBurned: 350},
			{ID: "k2", Date: "2026-08-12", Exercise: "lift", CaloriesBurned: 200},
		},
		Profile: &userProfile{Gender: "Male", HeightCM: 180, Age: 30, GoalWeightKG: &kg},
	}
}

// TestBuildSummary_Pipeline verifies the end-to-end derivation: mixed date
// encodings land on the same calendar days, the bad row is counted as
// skipped, and the fused timeline matches the three sources.
func TestBuildSummary_Pipeline(t *testing.T) {
	resp, err := buildSummary(testSnapshot(), fixedNow)
	if err != nil {
		t.Fatalf("buildSummary returned error: %v", err)
	}

	if resp.SkippedRows != 1 {
		t.Errorf("skipped rows = %d, want 1", resp.SkippedRows)
	}
	if len(resp.Days) != 3 {
		t.Fatalf("got %d days, want 3 (Aug 10, 11, 12)", len(resp.Days))
	}

	// Aug 10: both meals summed despite different date encodings.
	d := resp.Days[0]
	if d.ProteinG != 80 || d.CarbsG != 60 || d.FatsG != 50 {
		t.Errorf("Aug 10 grams = %v/%v/%v, want 80/60/50", d.ProteinG, d.CarbsG, d.FatsG)
	}
	if d.CaloriesIn != 80*4+60*4+50*9 {
		t.Errorf("Aug 10 calories_in = %v, want %v", d.CaloriesIn, 80*4+60*4+50*9)
	}
	if d.WeightKG == nil || *d.WeightKG != 84.2 || !d.WeightLogged {
		t.Errorf("Aug 10 weight = %v (logged %v), want 84.2 logged", d.WeightKG, d.WeightLogged)
	}

	// Aug 11: workout only; weight forward-filled from Aug 10.
	d = resp.Days[1]
	if d.CaloriesBurned != 350 || d.CaloriesIn != 0 {
		t.Errorf("Aug 11 = burned %v in %v, want 350/0", d.CaloriesBurned, d.CaloriesIn)
	}
	if d.WeightKG == nil || *d.WeightKG != 84.2 || d.WeightLogged {
		t.Errorf("Aug 11 weight = %v (logged %v), want forward-filled 84.2", d.WeightKG, d.WeightLogged)
	}

	// Aug 12: macros, workout, and a fresh weight reading.
	d = resp.Days[2]
	if d.WeightKG == nil || *d.WeightKG != 83.9 || !d.WeightLogged {
		t.Errorf("Aug 12 weight = %v (logged %v), want 83.9 logged", d.WeightKG, d.WeightLogged)
	}
	if d.NetCalories != d.CaloriesIn-200 {
		t.Errorf("Aug 12 net = %v, want in minus burned", d.NetCalories)
	}

	// Three consecutive logged days ending at the latest record.
	if resp.Metrics.CurrentStreak != 3 || resp.Metrics.BestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 3/3",
			resp.Metrics.CurrentStreak, resp.Metrics.BestStreak)
	}
}

// TestBuildSummary_Idempotent verifies deriving the same snapshot twice
// yields identical output — the pipeline holds no state between runs.
func TestBuildSummary_Idempotent(t *testing.T) {
	snap := testSnapshot()
	first, err := buildSummary(snap, fixedNow)
	if err != nil {
		t.Fatalf("first buildSummary returned error: %v", err)
	}
	second, err := buildSummary(snap, fixedNow)
	if err != nil {
		t.Fatalf("second buildSummary returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("buildSummary not idempotent across identical snapshots")
	}
}

// TestBuildSummary_WorkoutViewFallback verifies the summary carries the
// most recent prior training day when today (2026-08-15) has no workout.
func TestBuildSummary_WorkoutViewFallback(t *testing.T) {
	resp, err := buildSummary(testSnapshot(), fixedNow)
	if err != nil {
		t.Fatalf("buildSummary returned error: %v", err)
	}
	if len(resp.WorkoutView) != 1 {
		t.Fatalf("workout view has %d entries, want 1", len(resp.WorkoutView))
	}
	v := resp.WorkoutView[0]
	if !v.Date.Time.Equal(day(2026, 8, 12)) || v.Exercise != "lift" {
		t.Errorf("workout view = %+v, want the Aug 12 lift session", v)
	}
}

// TestBuildSummary_EmptySnapshot verifies the awaiting-first-entry state: no
// rows anywhere yields an empty timeline and an all-unavailable bundle, not
// an error.
func TestBuildSummary_EmptySnapshot(t *testing.T) {
	resp, err := buildSummary(snapshot{}, fixedNow)
	if err != nil {
		t.Fatalf("buildSummary returned error: %v", err)
	}
	if len(resp.Days) != 0 {
		t.Errorf("got %d days, want 0", len(resp.Days))
	}
	if resp.Metrics.MaintenanceKcal != nil {
		t.Error("maintenance should be unavailable with no data")
	}
	if len(resp.WorkoutView) != 0 {
		t.Errorf("workout view = %+v, want empty", resp.WorkoutView)
	}
}

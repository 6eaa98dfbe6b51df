package main

import (
	"reflect"
	"testing"
)

// TestCaloriesFromMacros verifies the 4/4/9 derivation. Stored calorie
// columns never feed this — intake is always recomputed from grams.
func TestCaloriesFromMacros(t *testing.T) {
	cases := []struct {
		name                 string
		protein, carbs, fats float64
		want                 float64
	}{
		{"zero day", 0, 0, 0, 0},
		{"keto-style day", 150, 20, 120, 1760},
		{"mixed day", 100, 200, 50, 1650},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := caloriesFromMacros(tc.protein, tc.carbs, tc.fats); got != tc.want {
				t.Errorf("caloriesFromMacros(%v, %v, %v) = %v, want %v",
					tc.protein, tc.carbs, tc.fats, got, tc.want)
			}
		})
	}
}

// TestFuse_OuterJoin verifies one record per date present in at least one
// source, ascending, with flow fields zeroed where nothing was logged.
func TestFuse_OuterJoin(t *testing.T) {
	macros := []macroDay{{Day: day(2026, 8, 10), ProteinG: 100, CarbsG: 50, FatsG: 40}}
	workouts := []workoutDay{{Day: day(2026, 8, 11), Burned: 400}}
	weights := []weightReading{{Day: day(2026, 8, 12), KG: 84.0}}

	records, err := fuse(macros, workouts, weights)
	if err != nil {
		t.Fatalf("fuse returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if !records[0].Date.Time.Equal(day(2026, 8, 10)) ||
		!records[1].Date.Time.Equal(day(2026, 8, 11)) ||
		!records[2].Date.Time.Equal(day(2026, 8, 12)) {
		t.Errorf("records not in ascending date order: %v, %v, %v",
			records[0].Date, records[1].Date, records[2].Date)
	}

	// Macro-only day: burned defaults to 0, net equals intake.
	r := records[0]
	if r.CaloriesIn != 100*4+50*4+40*9 {
		t.Errorf("calories_in = %v, want %v", r.CaloriesIn, 100*4+50*4+40*9)
	}
	if r.CaloriesBurned != 0 || r.NetCalories != r.CaloriesIn {
		t.Errorf("macro-only day: burned = %v net = %v, want 0 and %v",
			r.CaloriesBurned, r.NetCalories, r.CaloriesIn)
	}

	// Workout-only day: flows zero except burned; net goes negative.
	r = records[1]
	if r.CaloriesIn != 0 || r.CaloriesBurned != 400 || r.NetCalories != -400 {
		t.Errorf("workout-only day: in=%v burned=%v net=%v, want 0/400/-400",
			r.CaloriesIn, r.CaloriesBurned, r.NetCalories)
	}
}

// TestFuse_WeightOnlyDay verifies a date with only a weight entry yields
// zero flow fields and its own logged weight, flagged as logged rather than
// forward-filled.
func TestFuse_WeightOnlyDay(t *testing.T) {
	records, err := fuse(nil, nil, []weightReading{{Day: day(2026, 8, 10), KG: 85.5}})
	if err != nil {
		t.Fatalf("fuse returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.CaloriesIn != 0 || r.CaloriesBurned != 0 {
		t.Errorf("flow fields = in %v / burned %v, want 0/0", r.CaloriesIn, r.CaloriesBurned)
	}
	if r.WeightKG == nil || *r.WeightKG != 85.5 {
		t.Errorf("weight = %v, want 85.5", r.WeightKG)
	}
	if !r.WeightLogged {
		t.Error("WeightLogged = false, want true for the day's own reading")
	}
}

// TestFuse_WeightForwardFill verifies weight carries forward across dates
// with no reading, and that dates before any reading stay unresolved (nil,
// never zero).
func TestFuse_WeightForwardFill(t *testing.T) {
	macros := []macroDay{
		{Day: day(2026, 8, 9), ProteinG: 10},
		{Day: day(2026, 8, 11), ProteinG: 20},
		{Day: day(2026, 8, 13), ProteinG: 30},
	}
	weights := []weightReading{{Day: day(2026, 8, 10), KG: 84.0}}

	records, err := fuse(macros, nil, weights)
	if err != nil {
		t.Fatalf("fuse returned error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	// Before any reading: unresolved.
	if records[0].WeightKG != nil {
		t.Errorf("weight before first reading = %v, want nil", *records[0].WeightKG)
	}
	// Filled days carry the Aug 10 value but are not flagged as logged.
	for _, r := range records[2:] {
		if r.WeightKG == nil || *r.WeightKG != 84.0 {
			t.Errorf("weight on %v = %v, want forward-filled 84.0", r.Date, r.WeightKG)
		}
		if r.WeightLogged {
			t.Errorf("WeightLogged on %v = true, want false for forward-filled", r.Date)
		}
	}
}

// TestFuse_Idempotent verifies fusing the same snapshots twice yields
// identical output.
func TestFuse_Idempotent(t *testing.T) {
	macros := []macroDay{{Day: day(2026, 8, 10), ProteinG: 100, CarbsG: 50, FatsG: 40}}
	workouts := []workoutDay{{Day: day(2026, 8, 10), Burned: 300}}
	weights := []weightReading{{Day: day(2026, 8, 9), KG: 84.0}}

	first, err := fuse(macros, workouts, weights)
	if err != nil {
		t.Fatalf("first fuse returned error: %v", err)
	}
	second, err := fuse(macros, workouts, weights)
	if err != nil {
		t.Fatalf("second fuse returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("fuse not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// TestFuse_NoSyntheticGapRows verifies calendar gaps produce no records.
func TestFuse_NoSyntheticGapRows(t *testing.T) {
	macros := []macroDay{
		{Day: day(2026, 8, 1), ProteinG: 10},
		{Day: day(2026, 8, 10), ProteinG: 20},
	}
	records, err := fuse(macros, nil, nil)
	if err != nil {
		t.Fatalf("fuse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 (no synthetic rows for the gap)", len(records))
	}
}

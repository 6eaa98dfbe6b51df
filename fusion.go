package main

import (
	"fmt"
	"sort"
	"time"
)

// caloriesFromMacros derives energy intake from macronutrient grams. Stored
// calorie columns are never trusted; intake is always recomputed here.
func caloriesFromMacros(proteinG, carbsG, fatsG float64) float64 {
	return proteinG*4 + carbsG*4 + fatsG*9
}

// fuse outer-joins the three daily aggregates into one record per date that
// appears in at least one source, sorted ascending.
//
// Missing-value policy differs by field class: flow fields (grams, burned
// calories) default to 0 — absence means nothing was logged. Weight is a
// state field and is forward-filled from the nearest earlier reading;
// absence means unchanged since the last measurement. A date with no prior
// weight history at all keeps WeightKG nil, never 0.
//
// Calendar gaps with no data in any source produce no record.
func fuse(macros []macroDay, workouts []workoutDay, weights []weightReading) ([]dayRecord, error) {
	type joined struct {
		macro   *macroDay
		workout *workoutDay
		weight  *weightReading
	}
	byDay := make(map[time.Time]*joined)
	get := func(day time.Time) *joined {
		j, ok := byDay[day]
		if !ok {
			j = &joined{}
			byDay[day] = j
		}
		return j
	}
	for i := range macros {
		get(macros[i].Day).macro = &macros[i]
	}
	for i := range workouts {
		get(workouts[i].Day).workout = &workouts[i]
	}
	for i := range weights {
		get(weights[i].Day).weight = &weights[i]
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	records := make([]dayRecord, 0, len(days))
	var lastWeight *float64
	seen := make(map[time.Time]bool, len(days))
	for _, day := range days {
		// Aggregation upstream guarantees single rows per category per date;
		// the join itself must not reintroduce duplicates.
		if seen[day] {
			return nil, fmt.Errorf("fuse: duplicate date %s in unified timeline", day.Format("2006-01-02"))
		}
		seen[day] = true

		j := byDay[day]
		rec := dayRecord{Date: DateOnly{day}}
		if j.macro != nil {
			rec.ProteinG = j.macro.ProteinG
			rec.CarbsG = j.macro.CarbsG
			rec.FatsG = j.macro.FatsG
		}
		if j.workout != nil {
			rec.CaloriesBurned = j.workout.Burned
		}
		if j.weight != nil {
			kg := j.weight.KG
			rec.WeightKG = &kg
			rec.WeightLogged = true
			lastWeight = &kg
		} else if lastWeight != nil {
			kg := *lastWeight
			rec.WeightKG = &kg
		}
		rec.CaloriesIn = caloriesFromMacros(rec.ProteinG, rec.CarbsG, rec.FatsG)
		rec.NetCalories = rec.CaloriesIn - rec.CaloriesBurned
		records = append(records, rec)
	}
	return records, nil
}

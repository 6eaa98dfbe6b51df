package main

import (
	"math"
	"time"
)

// kcalPerKG is the energy content of one kilogram of body fat.
const kcalPerKG = 7700.0

// activityMultiplier maps the trailing 7-day average of burned calories to a
// TDEE multiplier. Thresholds are the same bands the source data was tuned
// against.
func activityMultiplier(avgBurned float64) float64 {
	switch {
	case avgBurned < 200:
		return 1.20
	case avgBurned < 400:
		return 1.35
	case avgBurned < 600:
		return 1.50
	default:
		return 1.65
	}
}

// sexConstant returns the Mifflin-St Jeor additive constant for the profile
// gender. ok=false for anything other than the two values the formula
// defines — the metric is then unavailable rather than guessed.
func sexConstant(gender string) (float64, bool) {
	switch gender {
	case "Male":
		return 5, true
	case "Female":
		return -161, true
	}
	return 0, false
}

// trailing returns up to the last n records of the timeline.
func trailing(records []dayRecord, n int) []dayRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

// deriveMetrics computes the full metric bundle from the unified timeline
// and the user profile. Pure function: same inputs, same bundle. Profile may
// be nil (not yet configured); every weight- or profile-dependent metric then
// reports nil instead of a fabricated zero.
func deriveMetrics(records []dayRecord, profile *userProfile) metricsBundle {
	var bundle metricsBundle
	bundle.DayCount = len(records)

	bundle.CurrentStreak, bundle.BestStreak = streaks(records)

	if len(records) == 0 {
		return bundle
	}
	latest := records[len(records)-1]
	bundle.NetKcal = latest.NetCalories
	bundle.LatestWeightKG = latest.WeightKG
	bundle.IsKetoDay = isKetoDay(latest)

	last7 := trailing(records, 7)
	var sumBurned, sumNet float64
	for _, r := range last7 {
		sumBurned += r.CaloriesBurned
		sumNet += r.NetCalories
	}
	avgBurned := sumBurned / float64(len(last7))
	meanNet := sumNet / float64(len(last7))

	// Weekly projection in kg/week. Negative means losing, positive means
	// gaining; the magnitude-only companion value is kept for consumers that
	// only chart a rate.
	bundle.WeeklyProjectionKG = round2(meanNet * 7 / kcalPerKG)
	bundle.WeeklyProjAbsKG = math.Abs(bundle.WeeklyProjectionKG)

	// Maintenance needs both a configured profile and some weight history.
	if profile == nil || latest.WeightKG == nil {
		return bundle
	}
	sex, ok := sexConstant(profile.Gender)
	if !ok {
		return bundle
	}
	bmr := 10**latest.WeightKG + 6.25*profile.HeightCM - 5*float64(profile.Age) + sex
	maintenance := int(bmr * activityMultiplier(avgBurned))
	bundle.MaintenanceKcal = &maintenance

	if maintenance > 0 {
		deficit := round1((float64(maintenance) - latest.NetCalories) / float64(maintenance) * 100)
		bundle.DeficitPct = &deficit
	}

	// ETA to goal, at the trailing average deficit rate. Not achievable when
	// the average is zero or a surplus.
	if profile.GoalWeightKG != nil {
		avgDeficit := -meanNet
		if avgDeficit > 0 {
			toLose := math.Max(*latest.WeightKG-*profile.GoalWeightKG, 0)
			eta := int(toLose * kcalPerKG / avgDeficit)
			bundle.ETADays = &eta
		}
	}

	return bundle
}

// isKetoDay classifies a day as ketogenic: under 25g carbs with at least 60%
// of logged energy from fat. A day with zero logged calories is never keto —
// an empty day would otherwise trivially pass the carb check.
func isKetoDay(r dayRecord) bool {
	return r.CarbsG < 25 && r.CaloriesIn > 0 && (r.FatsG*9/r.CaloriesIn) >= 0.6
}

// streaks runs a single ascending pass over the timeline and returns the
// streak as of the last day plus the best streak ever observed.
//
// A day is valid when anything was actually logged for it: calories in,
// calories burned, or a weight reading taken on that exact date. A
// forward-filled weight does not count. Consecutive valid calendar days
// extend the streak; a gap over one day restarts it at 1; an invalid day
// resets it to 0.
func streaks(records []dayRecord) (current, best int) {
	var prevValid time.Time
	havePrev := false
	for _, r := range records {
		valid := r.CaloriesIn > 0 || r.CaloriesBurned > 0 || r.WeightLogged
		if !valid {
			current = 0
			continue
		}
		if havePrev && prevValid.AddDate(0, 0, 1).Equal(r.Date.Time) && current > 0 {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
		prevValid = r.Date.Time
		havePrev = true
	}
	return current, best
}

// round1 rounds to one decimal place; round2 to two.
func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

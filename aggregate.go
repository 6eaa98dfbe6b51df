package main

import (
	"log"
	"sort"
	"time"
)

/* ─── Normalization passes ───────────────────────────────────────────── */

// normalizeMacros converts raw macro rows into dated entries, dropping rows
// whose date is missing or rejected. Returns the surviving entries and the
// number of rejected rows.
func normalizeMacros(rows []macroRow, n *dateNormalizer) ([]macroEntry, int) {
	entries := make([]macroEntry, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		day, res := n.Normalize(r.Date)
		switch res {
		case dateRejected:
			skipped++
			log.Printf("[normalize] skipping macro row %s: unparseable or implausible date %q", r.ID, r.Date)
			continue
		case dateMissing:
			continue
		}
		entries = append(entries, macroEntry{Day: day, ProteinG: r.ProteinG, CarbsG: r.CarbsG, FatsG: r.FatsG})
	}
	return entries, skipped
}

// normalizeWorkouts converts raw workout rows into dated entries.
func normalizeWorkouts(rows []workoutRow, n *dateNormalizer) ([]workoutEntry, int) {
	entries := make([]workoutEntry, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		day, res := n.Normalize(r.Date)
		switch res {
		case dateRejected:
			skipped++
			log.Printf("[normalize] skipping workout row %s: unparseable or implausible date %q", r.ID, r.Date)
			continue
		case dateMissing:
			continue
		}
		entries = append(entries, workoutEntry{Day: day, Exercise: r.Exercise, Burned: r.CaloriesBurned})
	}
	return entries, skipped
}

// normalizeWeights converts raw weight rows into dated readings.
func normalizeWeights(rows []weightRow, n *dateNormalizer) ([]weightReading, int) {
	readings := make([]weightReading, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		day, res := n.Normalize(r.Date)
		switch res {
		case dateRejected:
			skipped++
			log.Printf("[normalize] skipping weight row %s: unparseable or implausible date %q", r.ID, r.Date)
			continue
		case dateMissing:
			continue
		}
		readings = append(readings, weightReading{Day: day, KG: r.WeightKG})
	}
	return readings, skipped
}

/* ─── Daily aggregation ──────────────────────────────────────────────── */

// aggregateMacros collapses same-day meal entries into one row per date with
// the gram fields summed, sorted ascending by date.
func aggregateMacros(entries []macroEntry) []macroDay {
	byDay := make(map[time.Time]*macroDay)
	for _, e := range entries {
		d, ok := byDay[e.Day]
		if !ok {
			d = &macroDay{Day: e.Day}
			byDay[e.Day] = d
		}
		d.ProteinG += e.ProteinG
		d.CarbsG += e.CarbsG
		d.FatsG += e.FatsG
	}
	out := make([]macroDay, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// aggregateWorkouts collapses same-day sessions into one row per date with
// burned calories summed, sorted ascending by date.
func aggregateWorkouts(entries []workoutEntry) []workoutDay {
	byDay := make(map[time.Time]*workoutDay)
	for _, e := range entries {
		d, ok := byDay[e.Day]
		if !ok {
			d = &workoutDay{Day: e.Day}
			byDay[e.Day] = d
		}
		d.Burned += e.Burned
	}
	out := make([]workoutDay, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// latestWeightPerDay applies last-write-wins per date: a later reading for
// the same date overwrites the earlier one. Input order is store order, which
// is insertion order.
func latestWeightPerDay(readings []weightReading) []weightReading {
	byDay := make(map[time.Time]float64)
	for _, r := range readings {
		byDay[r.Day] = r.KG
	}
	out := make([]weightReading, 0, len(byDay))
	for day, kg := range byDay {
		out = append(out, weightReading{Day: day, KG: kg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

/* ─── Today-or-latest workout view ───────────────────────────────────── */

// todayOrLatestWorkouts returns the full-resolution workout entries for
// today. If today has none, it falls back to the most recent earlier date
// whose total burned calories are nonzero, so the display doesn't read as
// idle right after a logged training day. Returns an empty slice when no
// qualifying date exists.
func todayOrLatestWorkouts(entries []workoutEntry, today time.Time) []workoutEntry {
	today = truncateToDay(today)

	pick := func(day time.Time) []workoutEntry {
		var out []workoutEntry
		for _, e := range entries {
			if e.Day.Equal(day) {
				out = append(out, e)
			}
		}
		return out
	}

	if view := pick(today); len(view) > 0 {
		return view
	}

	// Fallback: latest prior date with a nonzero burn total.
	burnedByDay := make(map[time.Time]float64)
	for _, e := range entries {
		if e.Day.Before(today) {
			burnedByDay[e.Day] += e.Burned
		}
	}
	var best time.Time
	found := false
	for day, burned := range burnedByDay {
		if burned <= 0 {
			continue
		}
		if !found || day.After(best) {
			best = day
			found = true
		}
	}
	if !found {
		return []workoutEntry{}
	}
	return pick(best)
}

package main

import (
	"testing"
	"time"
)

// fixedNow pins "now" to 2026-08-15 so plausibility-window tests are
// deterministic.
func fixedNow() time.Time {
	return time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

/* ─── Format coverage ────────────────────────────────────────────────── */

// TestNormalize_MixedFormats verifies that each of the source's date styles
// parses to the same calendar day, including the day-first ambiguous ones.
func TestNormalize_MixedFormats(t *testing.T) {
	n := newDateNormalizer(fixedNow)

	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"ISO", "2026-08-01", day(2026, 8, 1)},
		{"ISO with time", "2026-08-01 07:45:00", day(2026, 8, 1)},
		{"day-first slash", "01/08/2026", day(2026, 8, 1)},
		{"day-first slash single digits", "1/8/2026", day(2026, 8, 1)},
		{"day-first ambiguous", "03/04/2026", day(2026, 4, 3)},
		{"day-first dash", "01-08-2026", day(2026, 8, 1)},
		{"day-first dot", "01.08.2026", day(2026, 8, 1)},
		{"abbreviated month", "5 Aug 2026", day(2026, 8, 5)},
		{"abbreviated month zero padded", "05 Aug 2026", day(2026, 8, 5)},
		{"full month", "5 August 2026", day(2026, 8, 5)},
		{"month first with comma", "Aug 5, 2026", day(2026, 8, 5)},
		{"surrounding whitespace", "  2026-08-01  ", day(2026, 8, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, res := n.Normalize(tc.raw)
			if res != dateOK {
				t.Fatalf("Normalize(%q) result = %v, want dateOK", tc.raw, res)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

// TestNormalize_Idempotent verifies that normalizing an already-normalized
// date is a no-op: formatting the result and normalizing again yields the
// same day.
func TestNormalize_Idempotent(t *testing.T) {
	n := newDateNormalizer(fixedNow)

	first, res := n.Normalize("14/08/2026")
	if res != dateOK {
		t.Fatalf("first Normalize result = %v, want dateOK", res)
	}
	second, res := n.Normalize(first.Format("2006-01-02"))
	if res != dateOK {
		t.Fatalf("second Normalize result = %v, want dateOK", res)
	}
	if !second.Equal(first) {
		t.Errorf("re-normalized date = %v, want %v", second, first)
	}
}

/* ─── Missing vs rejected ────────────────────────────────────────────── */

// TestNormalize_BlankIsMissing verifies that blank and whitespace-only cells
// are reported as missing, not malformed.
func TestNormalize_BlankIsMissing(t *testing.T) {
	n := newDateNormalizer(fixedNow)
	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, res := n.Normalize(raw); res != dateMissing {
			t.Errorf("Normalize(%q) result = %v, want dateMissing", raw, res)
		}
	}
}

// TestNormalize_Unparseable verifies garbage input is rejected, not missing.
func TestNormalize_Unparseable(t *testing.T) {
	n := newDateNormalizer(fixedNow)
	for _, raw := range []string{"yesterday", "13/13/2026", "2026-99-99", "80.5"} {
		if _, res := n.Normalize(raw); res != dateRejected {
			t.Errorf("Normalize(%q) result = %v, want dateRejected", raw, res)
		}
	}
}

/* ─── Plausibility window ────────────────────────────────────────────── */

// TestNormalize_PlausibilityWindow verifies the default window: 365 days
// past and 30 days future, inclusive at both edges. A fat-fingered year typo
// lands far outside the window and is rejected.
func TestNormalize_PlausibilityWindow(t *testing.T) {
	n := newDateNormalizer(fixedNow)
	today := day(2026, 8, 15)

	cases := []struct {
		name string
		raw  string
		want normalizeResult
	}{
		{"today", "2026-08-15", dateOK},
		{"past edge", today.AddDate(0, 0, -365).Format("2006-01-02"), dateOK},
		{"past edge exceeded", today.AddDate(0, 0, -366).Format("2006-01-02"), dateRejected},
		{"future edge", today.AddDate(0, 0, 30).Format("2006-01-02"), dateOK},
		{"future edge exceeded", today.AddDate(0, 0, 31).Format("2006-01-02"), dateRejected},
		{"year typo", "2016-08-15", dateRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, res := n.Normalize(tc.raw); res != tc.want {
				t.Errorf("Normalize(%q) result = %v, want %v", tc.raw, res, tc.want)
			}
		})
	}
}

// TestNormalize_ConfigurableWindow verifies a widened window accepts dates
// the default would reject.
func TestNormalize_ConfigurableWindow(t *testing.T) {
	n := newDateNormalizer(fixedNow)
	n.maxPastDays = 10 * 365

	if _, res := n.Normalize("2019-01-01"); res != dateOK {
		t.Errorf("Normalize with widened window result = %v, want dateOK", res)
	}
}

package main

import (
	"strings"
	"time"
)

// dateFormats is the ordered list of layouts tried when normalizing a raw
// date cell. ISO comes first so that normalizing an already-normalized value
// parses on the first attempt and round-trips unchanged. The remaining
// layouts cover the day-first numeric and abbreviated-month styles seen in
// the source sheets.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 06",
}

// dateNormalizer parses heterogeneous date strings into calendar dates and
// rejects values outside a plausibility window around "now". The clock is
// injectable so tests can pin the window.
type dateNormalizer struct {
	now           func() time.Time
	maxPastDays   int
	maxFutureDays int
}

// newDateNormalizer returns a normalizer with the default window: 365 days
// into the past, 30 days into the future. The window exists to throw away
// fat-fingered year typos before they distort trend charts.
func newDateNormalizer(now func() time.Time) *dateNormalizer {
	if now == nil {
		now = time.Now
	}
	return &dateNormalizer{now: now, maxPastDays: 365, maxFutureDays: 30}
}

// normalizeResult distinguishes the three outcomes of normalization.
type normalizeResult int

const (
	dateOK normalizeResult = iota
	dateMissing
	dateRejected
)

// Normalize parses raw into a calendar date (midnight UTC). A blank or
// whitespace-only cell is missing, not malformed. Unparseable or implausible
// values are rejected; rejection is non-fatal and the caller decides whether
// to count the skip.
func (n *dateNormalizer) Normalize(raw string) (time.Time, normalizeResult) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, dateMissing
	}

	var parsed time.Time
	ok := false
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			parsed = t
			ok = true
			break
		}
	}
	if !ok {
		return time.Time{}, dateRejected
	}

	day := truncateToDay(parsed)
	if !n.plausible(day) {
		return time.Time{}, dateRejected
	}
	return day, dateOK
}

// plausible reports whether day falls inside the configured window around now.
func (n *dateNormalizer) plausible(day time.Time) bool {
	today := truncateToDay(n.now())
	earliest := today.AddDate(0, 0, -n.maxPastDays)
	latest := today.AddDate(0, 0, n.maxFutureDays)
	return !day.Before(earliest) && !day.After(latest)
}

// truncateToDay strips the time-of-day component, keeping midnight UTC.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

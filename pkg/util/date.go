package util

import (
	"sort"
	"time"
)

// DateLayout is the ISO calendar date used for dashboard keys and article dates.
const DateLayout = "2006-01-02"

var seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Seoul returns the Asia/Seoul location (fixed +09:00 when tzdata is missing).
func Seoul() *time.Location { return seoul }

// ParseDate parses YYYY-MM-DD. Returns (t, true) if it worked.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsDate reports whether s is a valid YYYY-MM-DD date.
func IsDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// DayKey formats t as a calendar date in Asia/Seoul.
func DayKey(t time.Time) string {
	return t.In(seoul).Format(DateLayout)
}

// SortDatesDesc sorts ISO dates in place, most recent first.
// ISO dates compare correctly as strings.
func SortDatesDesc(dates []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
}

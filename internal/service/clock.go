package service

import "time"

// dayWindow returns the half-open [midnight, nextMidnight) window that
// contains t, in t's location. Every day-boundary comparison in the
// system goes through this one window; no operation may use an inclusive
// end-of-day timestamp instead.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

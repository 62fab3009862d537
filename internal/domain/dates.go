package domain

import "time"

// StartOfDay normalizes a timestamp to midnight of its calendar day.
// Day-only "start" inputs are stored this way.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay normalizes a timestamp to the last second of its calendar day.
// "End" and baseline-end fields are stored this way so that a completion on
// the due day itself never counts as late.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

package models

import "time"

// Day returns the calendar date of t, in t's own location, as midnight UTC.
// Dates stored in DATE columns come back in the same form, so Days compare
// with Equal, Before and After.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

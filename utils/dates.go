// utils/dates.go
package utils

import "time"

// DateLayout is the wire format for date-only fields (due_date, paid_date, ...).
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DateString renders a timestamp as a date-only string.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

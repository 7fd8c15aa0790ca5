package schedule

import "time"

// RentalDays returns the number of billable days between start and end. The
// count is the calendar-day difference of the date components, with a minimum
// of one: a same-day rental bills exactly one day, and a partial trailing day
// counts as a full day.
func RentalDays(start, end time.Time) int {
	days := calendarDays(start, end)
	if days < 1 {
		return 1
	}
	return days
}

// TotalPrice computes the rental total from a per-day rate.
func TotalPrice(rate float64, start, end time.Time) float64 {
	return rate * float64(RentalDays(start, end))
}

// calendarDays compares date components only. Both dates are rebuilt in UTC so
// DST transitions never produce a 23 or 25 hour day.
func calendarDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s) / (24 * time.Hour))
}

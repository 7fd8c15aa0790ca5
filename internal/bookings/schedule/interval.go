package schedule

import (
	"time"

	"fleetrent/pkg/model"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the interval has positive duration.
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints (a ends exactly when b starts) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Conflict scans existing intervals and returns the first one overlapping the
// candidate. Callers must reject degenerate candidates (start >= end) before
// calling; date ordering is a separate validation concern.
func Conflict(candidate Interval, existing []Interval) (Interval, bool) {
	for _, e := range existing {
		if Overlaps(candidate, e) {
			return e, true
		}
	}
	return Interval{}, false
}

// FromBooking extracts the occupied interval of a booking.
func FromBooking(b model.Booking) Interval {
	return Interval{Start: b.StartDate, End: b.EndDate}
}

// FromBookings maps bookings to their occupied intervals.
func FromBookings(bookings []model.Booking) []Interval {
	intervals := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, FromBooking(b))
	}
	return intervals
}

// FromWindow extracts the interval of an availability window.
func FromWindow(w model.AvailabilityWindow) Interval {
	return Interval{Start: w.StartDate, End: w.EndDate}
}

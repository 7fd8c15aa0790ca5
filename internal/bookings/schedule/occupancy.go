package schedule

import "time"

const hoursPerDay = 24

// DayOccupancy describes one calendar day that has at least one booked hour.
// BookedHours lists the hour indices (0-23) covered by an active booking, in
// ascending order. FullyBooked means all 24 hours are covered.
type DayOccupancy struct {
	Date        string `json:"date"` // YYYY-MM-DD
	FullyBooked bool   `json:"fully_booked"`
	BookedHours []int  `json:"booked_hours"`
}

// Occupancy partitions each day in [from, to) against the occupied intervals.
// Days with no coverage are omitted. An hour counts as booked when any part
// of [day+h, day+h+1) intersects an interval.
func Occupancy(from, to time.Time, intervals []Interval) []DayOccupancy {
	var result []DayOccupancy

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for day.Before(to) {
		occupancy := dayOccupancy(day, intervals)
		if len(occupancy.BookedHours) > 0 {
			result = append(result, occupancy)
		}
		day = day.AddDate(0, 0, 1)
	}

	return result
}

func dayOccupancy(day time.Time, intervals []Interval) DayOccupancy {
	occupancy := DayOccupancy{Date: day.Format("2006-01-02")}

	for h := 0; h < hoursPerDay; h++ {
		hour := Interval{
			Start: day.Add(time.Duration(h) * time.Hour),
			End:   day.Add(time.Duration(h+1) * time.Hour),
		}
		if _, booked := Conflict(hour, intervals); booked {
			occupancy.BookedHours = append(occupancy.BookedHours, h)
		}
	}

	occupancy.FullyBooked = len(occupancy.BookedHours) == hoursPerDay
	return occupancy
}

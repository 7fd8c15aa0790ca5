package schedule

import (
	"testing"
	"time"
)

func TestOccupancy(t *testing.T) {
	t.Run("no intervals yields no days", func(t *testing.T) {
		got := Occupancy(day(1, 0), day(5, 0), nil)
		if len(got) != 0 {
			t.Errorf("expected no occupied days, got %v", got)
		}
	})

	t.Run("full day coverage", func(t *testing.T) {
		intervals := []Interval{{Start: day(2, 0), End: day(3, 0)}}

		got := Occupancy(day(1, 0), day(5, 0), intervals)
		if len(got) != 1 {
			t.Fatalf("expected 1 occupied day, got %d", len(got))
		}
		if got[0].Date != "2026-03-02" {
			t.Errorf("unexpected date: %s", got[0].Date)
		}
		if !got[0].FullyBooked {
			t.Error("day covered 00:00-24:00 should be fully booked")
		}
		if len(got[0].BookedHours) != 24 {
			t.Errorf("expected 24 booked hours, got %d", len(got[0].BookedHours))
		}
	})

	t.Run("partial day reports hour indices", func(t *testing.T) {
		intervals := []Interval{{Start: day(2, 8), End: day(2, 11)}}

		got := Occupancy(day(2, 0), day(3, 0), intervals)
		if len(got) != 1 {
			t.Fatalf("expected 1 occupied day, got %d", len(got))
		}
		if got[0].FullyBooked {
			t.Error("three-hour booking should not mark the day fully booked")
		}
		want := []int{8, 9, 10}
		if len(got[0].BookedHours) != len(want) {
			t.Fatalf("booked hours = %v, want %v", got[0].BookedHours, want)
		}
		for i, h := range want {
			if got[0].BookedHours[i] != h {
				t.Errorf("booked hours = %v, want %v", got[0].BookedHours, want)
				break
			}
		}
	})

	t.Run("interval spanning multiple days", func(t *testing.T) {
		intervals := []Interval{{Start: day(2, 12), End: day(4, 6)}}

		got := Occupancy(day(1, 0), day(6, 0), intervals)
		if len(got) != 3 {
			t.Fatalf("expected 3 occupied days, got %d", len(got))
		}

		// March 2: booked from noon onward
		if got[0].FullyBooked || len(got[0].BookedHours) != 12 {
			t.Errorf("day one: fully=%v hours=%d, want partial 12", got[0].FullyBooked, len(got[0].BookedHours))
		}
		// March 3: entire day inside the interval
		if !got[1].FullyBooked {
			t.Error("middle day should be fully booked")
		}
		// March 4: booked until 06:00
		if got[2].FullyBooked || len(got[2].BookedHours) != 6 {
			t.Errorf("last day: fully=%v hours=%d, want partial 6", got[2].FullyBooked, len(got[2].BookedHours))
		}
	})

	t.Run("partial hour marks the whole hour", func(t *testing.T) {
		start := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
		end := time.Date(2026, time.March, 2, 10, 15, 0, 0, time.UTC)
		intervals := []Interval{{Start: start, End: end}}

		got := Occupancy(day(2, 0), day(3, 0), intervals)
		if len(got) != 1 {
			t.Fatalf("expected 1 occupied day, got %d", len(got))
		}
		want := []int{9, 10}
		if len(got[0].BookedHours) != 2 || got[0].BookedHours[0] != want[0] || got[0].BookedHours[1] != want[1] {
			t.Errorf("booked hours = %v, want %v", got[0].BookedHours, want)
		}
	})
}

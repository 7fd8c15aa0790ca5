package service

import (
	"context"
	"sync"

	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/model"
)

// UnitStatsSource and BookingStatsSource are the aggregate queries the
// dashboard pulls from the fleet and booking repositories.
type UnitStatsSource interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type BookingStatsSource interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumRevenue(ctx context.Context) (float64, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	units    UnitStatsSource
	bookings BookingStatsSource
	cfg      *config.Config
}

func NewDashboardService(units UnitStatsSource, bookings BookingStatsSource, cfg *config.Config) DashboardService {
	return &dashboardService{
		units:    units,
		bookings: bookings,
		cfg:      cfg,
	}
}

// Stats runs the three aggregations in parallel. Revenue excludes cancelled
// bookings at the repository level.
func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var unitCounts, bookingCounts map[string]int64
	var revenue float64
	var errUnits, errBookings, errRevenue error
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		unitCounts, errUnits = s.units.CountByStatus(ctx)
	}()

	go func() {
		defer wg.Done()
		bookingCounts, errBookings = s.bookings.CountByStatus(ctx)
	}()

	go func() {
		defer wg.Done()
		revenue, errRevenue = s.bookings.SumRevenue(ctx)
	}()

	wg.Wait()

	if errUnits != nil {
		s.cfg.Log.Error("Failed to aggregate unit statuses", "error", errUnits)
		return nil, apperrors.Internal("Failed to compute dashboard stats", errUnits)
	}
	if errBookings != nil {
		s.cfg.Log.Error("Failed to aggregate booking statuses", "error", errBookings)
		return nil, apperrors.Internal("Failed to compute dashboard stats", errBookings)
	}
	if errRevenue != nil {
		s.cfg.Log.Error("Failed to aggregate revenue", "error", errRevenue)
		return nil, apperrors.Internal("Failed to compute dashboard stats", errRevenue)
	}

	stats := &model.DashboardStats{
		UnitsByStatus:    unitCounts,
		BookingsByStatus: bookingCounts,
		TotalRevenue:     revenue,
	}
	for _, count := range unitCounts {
		stats.TotalUnits += count
	}
	for _, count := range bookingCounts {
		stats.TotalBookings += count
	}

	return stats, nil
}

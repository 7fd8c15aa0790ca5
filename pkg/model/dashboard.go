package model

// DashboardStats is the fleet-wide summary served to the operations view.
type DashboardStats struct {
	TotalUnits       int64            `json:"total_units"`
	UnitsByStatus    map[string]int64 `json:"units_by_status"`
	TotalBookings    int64            `json:"total_bookings"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	TotalRevenue     float64          `json:"total_revenue"`
}

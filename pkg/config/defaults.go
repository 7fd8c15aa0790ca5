package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "fleetrent"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultJWTExpiry = 24 * time.Hour

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// A single unit rarely carries more than a handful of active bookings,
	// so the commit-time overlap scan is bounded rather than paginated.
	DefaultOverlapScanLimit = 30

	DefaultBookingLockTTL = 10 * time.Second

	DefaultMaxPricePerDay = 1_000_000.0

	DefaultPaginationLimit = 100
)

const (
	// Unit statuses.
	UnitAvailable   = "AVAILABLE"
	UnitRented      = "RENTED"
	UnitMaintenance = "MAINTENANCE"

	// Booking statuses. Pending, confirmed and in-progress bookings block
	// availability for their unit.
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingCancelled  = "CANCELLED"
	BookingCompleted  = "COMPLETED"
	BookingNoShow     = "NO_SHOW"
	BookingInProgress = "IN_PROGRESS"
)

// ActiveBookingStatuses are the statuses that make a booking occupy its unit's
// calendar.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingInProgress}

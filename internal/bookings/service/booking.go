package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "fleetrent/internal/bookings/errors"
	"fleetrent/internal/bookings/events"
	"fleetrent/internal/bookings/repository"
	"fleetrent/internal/bookings/schedule"
	"fleetrent/internal/bookings/validator"
	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/model"
	"fleetrent/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// UnitReader and CustomerReader are the slices of the neighboring services
// the booking path needs for existence checks.
type UnitReader interface {
	GetByID(ctx context.Context, id string) (*model.Unit, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, unitID string) ([]model.AvailabilityWindow, error)
	Occupancy(ctx context.Context, unitID string, from, to time.Time) ([]schedule.DayOccupancy, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	units     UnitReader
	customers CustomerReader
	publisher events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	units UnitReader,
	customers CustomerReader,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		units:     units,
		customers: customers,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	if _, err := s.units.GetByID(ctx, booking.UnitID); err != nil {
		return err
	}
	if _, err := s.customers.GetByID(ctx, booking.CustomerID); err != nil {
		return err
	}

	// The submitted total is advisory. It already passed the positive check;
	// the stored value is always recomputed from the rate and dates.
	booking.TotalPrice = schedule.TotalPrice(booking.PricePerDay, booking.StartDate, booking.EndDate)

	// Advisory lock narrows the race window between concurrent requests for
	// the same slot. The in-transaction re-check is the actual guarantee.
	lockID, err := s.acquireSlotLock(ctx, booking.UnitID, booking.StartDate)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "unit_id", booking.UnitID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"unit_id", booking.UnitID,
		"customer_id", booking.CustomerID,
		"start_date", booking.StartDate,
		"total_price", booking.TotalPrice,
	)

	s.publish(ctx, model.EventBookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return validationError(err)
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}
	merged.TotalPrice = schedule.TotalPrice(merged.PricePerDay, merged.StartDate, merged.EndDate)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)

	eventType := model.EventBookingUpdated
	if merged.Status == config.BookingCancelled && existing.Status != config.BookingCancelled {
		eventType = model.EventBookingCancelled
	}
	s.publish(ctx, eventType, merged)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)

	s.publish(ctx, model.EventBookingDeleted, existing)
	return nil
}

// Availability lists the occupied windows of a unit: active-status bookings
// that have not yet ended, ordered by start date.
func (s *bookingService) Availability(ctx context.Context, unitID string) ([]model.AvailabilityWindow, error) {
	if unitID == "" {
		return nil, apperrors.InvalidInput("unit_id is required")
	}

	now := time.Now().UTC()
	bookings, err := s.repo.FindActiveByUnit(ctx, unitID, &now, nil, s.cfg.OverlapScanLimit, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to query availability", "unit_id", unitID, "error", err)
		return nil, apperrors.Internal("Failed to query availability", err)
	}

	windows := make([]model.AvailabilityWindow, 0, len(bookings))
	for _, b := range bookings {
		windows = append(windows, model.AvailabilityWindow{
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		})
	}

	return windows, nil
}

func (s *bookingService) Occupancy(ctx context.Context, unitID string, from, to time.Time) ([]schedule.DayOccupancy, error) {
	if unitID == "" {
		return nil, apperrors.InvalidInput("unit_id is required")
	}
	if !to.After(from) {
		return nil, apperrors.InvalidInput("to must be after from")
	}

	bookings, err := s.repo.FindActiveByUnit(ctx, unitID, &from, &to, 0, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to query occupancy", "unit_id", unitID, "error", err)
		return nil, apperrors.Internal("Failed to query occupancy", err)
	}

	intervals := make([]schedule.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, schedule.FromBooking(*b))
	}

	return schedule.Occupancy(from, to, intervals), nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.Location = sanitizer.Normalize(b.Location)
	b.Metadata = sanitizer.NormalizeTags(b.Metadata)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = config.BookingPending
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.StartDate != nil {
		merged.StartDate = *updates.StartDate
	}
	if updates.EndDate != nil {
		merged.EndDate = *updates.EndDate
	}
	if updates.PricePerDay != nil {
		merged.PricePerDay = *updates.PricePerDay
	}
	if updates.Location != nil {
		merged.Location = *updates.Location
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Metadata != nil {
		merged.Metadata = *updates.Metadata
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validationError(err)
	}

	// Date ordering is a distinct failure so clients can tell a degenerate
	// range apart from a calendar conflict.
	if err := s.validator.ValidateDateOrder(booking); err != nil {
		s.cfg.Log.Warn("Booking date order invalid", "error", err)
		return validationError(err)
	}

	if booking.PricePerDay > s.cfg.MaxPricePerDay {
		return apperrors.Validation("Booking validation failed", map[string]any{
			"PricePerDay": fmt.Sprintf("price_per_day cannot exceed %.0f", s.cfg.MaxPricePerDay),
		})
	}

	return nil
}

// verifyNoOverlap re-fetches active bookings for the unit inside the current
// transaction and rejects when the candidate overlaps any of them. Running
// inside the transaction closes the window between validation and insert.
func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindActiveByUnit(ctx, booking.UnitID, &booking.StartDate, &booking.EndDate, s.cfg.OverlapScanLimit, 0)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	candidate := schedule.FromBooking(*booking)
	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if hit, conflict := schedule.Conflict(candidate, []schedule.Interval{schedule.FromBooking(*b)}); conflict {
			return apperrors.Conflict(fmt.Sprintf(
				"Booking dates overlap with an existing booking (%s - %s)",
				hit.Start.Format(time.RFC3339),
				hit.End.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// acquireSlotLock creates an advisory lock for a unit's slot. Returns a
// conflict error if another request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, unitID string, startDate time.Time) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%d", unitID, startDate.Unix())

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publish emits a booking event. Best effort: a broker failure is logged and
// never propagates to the caller.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := model.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UnitID:     booking.UnitID,
		CustomerID: booking.CustomerID,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("Booking validation failed", validationErrs.Details())
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

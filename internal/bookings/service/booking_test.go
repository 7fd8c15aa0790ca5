package service

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "fleetrent/internal/bookings/errors"
	"fleetrent/internal/bookings/events"
	"fleetrent/internal/bookings/validator"
	"fleetrent/pkg/config"
	mongotx "fleetrent/pkg/db/mongo"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc           func(ctx context.Context, booking *model.Booking) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Booking, error)
	findActiveByUnitFunc func(ctx context.Context, unitID string, start, end *time.Time, limit int, offset int64) ([]*model.Booking, error)
	updateFunc           func(ctx context.Context, id string, booking *model.Booking) (*mongo.UpdateResult, error)
	deleteFunc           func(ctx context.Context, id string) error
	createCalls          int
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, booking)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) FindActiveByUnit(ctx context.Context, unitID string, start, end *time.Time, limit int, offset int64) ([]*model.Booking, error) {
	if m.findActiveByUnitFunc != nil {
		return m.findActiveByUnitFunc(ctx, unitID, start, end, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountActiveByUnit(ctx context.Context, unitID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockBookingRepository) SumRevenue(ctx context.Context) (float64, error) {
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepository struct {
	createFunc  func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleteCalls int
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleteCalls++
	return nil
}

type mockUnitReader struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Unit, error)
}

func (m *mockUnitReader) GetByID(ctx context.Context, id string) (*model.Unit, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Unit{ID: id}, nil
}

type mockCustomerReader struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Customer, error)
}

func (m *mockCustomerReader) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Customer{ID: id}, nil
}

// ────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────

const (
	testUnitID     = "7f6c0a3e-9a1b-4c8d-b2e3-1f4a5b6c7d8e"
	testCustomerID = "2b3c4d5e-6f70-4a81-92b3-c4d5e6f70a81"
	testBookingID  = "9e8d7c6b-5a40-4f31-8e2d-1c0b9a887766"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		BookingLockTTL:   time.Minute,
		OverlapScanLimit: 500,
		MaxPricePerDay:   1_000_000,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockLockRepository, cfg *config.Config) BookingService {
	return NewBookingService(
		repo,
		locks,
		&mockUnitReader{},
		&mockCustomerReader{},
		events.NoopPublisher{},
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)
}

func validBooking(start, end time.Time) *model.Booking {
	return &model.Booking{
		UnitID:      testUnitID,
		CustomerID:  testCustomerID,
		StartDate:   start,
		EndDate:     end,
		PricePerDay: 3500,
		TotalPrice:  3500,
	}
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000}},
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_RecomputesTotalAndDefaultsStatus(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockBookingRepository{}
	locks := &mockLockRepository{}
	svc := newTestService(repo, locks, cfg)

	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	booking := validBooking(start, end)
	booking.TotalPrice = 1 // client-supplied value must be ignored

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalPrice != 3500*5 {
		t.Errorf("expected total price %v, got %v", 3500*5, booking.TotalPrice)
	}
	if booking.Status != config.BookingPending {
		t.Errorf("expected default status %q, got %q", config.BookingPending, booking.Status)
	}
	if repo.createCalls != 1 {
		t.Errorf("expected 1 create call, got %d", repo.createCalls)
	}
	if locks.deleteCalls != 1 {
		t.Errorf("expected lock to be released once, got %d", locks.deleteCalls)
	}
}

func TestCreate_SameDayChargesOneDay(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockBookingRepository{}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	booking := validBooking(start, end)

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalPrice != 3500 {
		t.Errorf("expected one-day total 3500, got %v", booking.TotalPrice)
	}
}

func TestCreate_OverlapRejected(t *testing.T) {
	cfg := testConfig(t)
	existing := &model.Booking{
		ID:        testBookingID,
		UnitID:    testUnitID,
		StartDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Status:    config.BookingConfirmed,
	}
	repo := &mockBookingRepository{
		findActiveByUnitFunc: func(ctx context.Context, unitID string, start, end *time.Time, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{existing}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	booking := validBooking(
		time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	)

	err := svc.Create(context.Background(), booking)
	if code := appErrCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %s", apperrors.CodeConflict, code)
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no create call after conflict, got %d", repo.createCalls)
	}
}

func TestCreate_TouchingEndpointsAccepted(t *testing.T) {
	cfg := testConfig(t)
	start := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	existing := &model.Booking{
		ID:        testBookingID,
		UnitID:    testUnitID,
		StartDate: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		EndDate:   start, // ends exactly when the candidate starts
		Status:    config.BookingConfirmed,
	}
	repo := &mockBookingRepository{
		findActiveByUnitFunc: func(ctx context.Context, unitID string, s, e *time.Time, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{existing}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	booking := validBooking(start, start.AddDate(0, 0, 2))

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("touching intervals must not conflict: %v", err)
	}
	if repo.createCalls != 1 {
		t.Errorf("expected 1 create call, got %d", repo.createCalls)
	}
}

func TestCreate_DegenerateRangeRejected(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockBookingRepository{}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	booking := validBooking(start, start)

	err := svc.Create(context.Background(), booking)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if _, ok := appErr.Details["EndDate"]; !ok {
		t.Errorf("expected EndDate detail, got %v", appErr.Details)
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no create call, got %d", repo.createCalls)
	}
}

func TestCreate_SlotLockHeld(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockBookingRepository{}
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, duplicateKeyErr()
		},
	}
	svc := newTestService(repo, locks, cfg)

	booking := validBooking(
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	)

	err := svc.Create(context.Background(), booking)
	if code := appErrCode(t, err); code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %s", apperrors.CodeConflict, code)
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no create call while lock held, got %d", repo.createCalls)
	}
}

func TestCreate_PriceAboveCeilingRejected(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxPricePerDay = 1000
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, cfg)

	booking := validBooking(
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	)

	err := svc.Create(context.Background(), booking)
	if code := appErrCode(t, err); code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, code)
	}
}

func TestCreate_UnknownUnitRejected(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockBookingRepository{}
	svc := NewBookingService(
		repo,
		&mockLockRepository{},
		&mockUnitReader{
			getByIDFunc: func(ctx context.Context, id string) (*model.Unit, error) {
				return nil, apperrors.NotFoundWithID("Unit", id)
			},
		},
		&mockCustomerReader{},
		events.NoopPublisher{},
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)

	booking := validBooking(
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	)

	err := svc.Create(context.Background(), booking)
	if code := appErrCode(t, err); code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, code)
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no create call, got %d", repo.createCalls)
	}
}

// ────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────

func TestUpdate_ExcludesSelfFromOverlapCheck(t *testing.T) {
	cfg := testConfig(t)
	existing := &model.Booking{
		ID:          testBookingID,
		UnitID:      testUnitID,
		CustomerID:  testCustomerID,
		StartDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		PricePerDay: 3500,
		TotalPrice:  7000,
		Status:      config.BookingConfirmed,
	}
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return existing, nil
		},
		findActiveByUnitFunc: func(ctx context.Context, unitID string, s, e *time.Time, limit int, offset int64) ([]*model.Booking, error) {
			// The booking being updated shows up in its own window scan.
			return []*model.Booking{existing}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	newEnd := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	err := svc.Update(context.Background(), testBookingID, &model.BookingUpdate{
		EndDate: &newEnd,
	})
	if err != nil {
		t.Fatalf("extending a booking must not conflict with itself: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	err := svc.Update(context.Background(), testBookingID, &model.BookingUpdate{})
	if code := appErrCode(t, err); code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, code)
	}
}

// ────────────────────────────────────────────────
// Availability and occupancy
// ────────────────────────────────────────────────

func TestAvailability_RequiresUnitID(t *testing.T) {
	cfg := testConfig(t)
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, cfg)

	_, err := svc.Availability(context.Background(), "")
	if code := appErrCode(t, err); code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s, got %s", apperrors.CodeInvalidInput, code)
	}
}

func TestAvailability_ReturnsOrderedWindows(t *testing.T) {
	cfg := testConfig(t)
	first := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	repo := &mockBookingRepository{
		findActiveByUnitFunc: func(ctx context.Context, unitID string, s, e *time.Time, limit int, offset int64) ([]*model.Booking, error) {
			if s == nil {
				t.Error("expected a lower bound on the window scan")
			}
			if e != nil {
				t.Error("availability must not bound the future")
			}
			return []*model.Booking{
				{StartDate: first, EndDate: first.AddDate(0, 0, 2)},
				{StartDate: second, EndDate: second.AddDate(0, 0, 1)},
			}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	windows, err := svc.Availability(context.Background(), testUnitID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if !windows[0].StartDate.Equal(first) || !windows[1].StartDate.Equal(second) {
		t.Errorf("windows out of order: %+v", windows)
	}
}

func TestOccupancy_RequiresValidRange(t *testing.T) {
	cfg := testConfig(t)
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, cfg)

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Occupancy(context.Background(), testUnitID, from, from)
	if code := appErrCode(t, err); code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s, got %s", apperrors.CodeInvalidInput, code)
	}
}

func TestOccupancy_MarksBookedHours(t *testing.T) {
	cfg := testConfig(t)
	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	repo := &mockBookingRepository{
		findActiveByUnitFunc: func(ctx context.Context, unitID string, s, e *time.Time, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{
				{
					StartDate: time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cfg)

	days, err := svc.Occupancy(context.Background(), testUnitID, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if days[0].FullyBooked {
		t.Error("day should not be fully booked")
	}
	if got := len(days[0].BookedHours); got != 3 {
		t.Errorf("expected 3 booked hours, got %d: %v", got, days[0].BookedHours)
	}
}

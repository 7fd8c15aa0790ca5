package service

import (
	"context"
	"errors"
	"testing"
	"time"

	unitserrors "fleetrent/internal/units/errors"
	"fleetrent/internal/units/validator"
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

type mockUnitRepository struct {
	createFunc   func(ctx context.Context, unit *model.Unit) error
	findByIDFunc func(ctx context.Context, id string) (*model.Unit, error)
	findAllFunc  func(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, error)
	countFunc    func(ctx context.Context, filters *model.UnitFilters) (int64, error)
	deleteCalls  int
}

func (m *mockUnitRepository) Create(ctx context.Context, unit *model.Unit) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, unit)
	}
	return nil
}

func (m *mockUnitRepository) FindByID(ctx context.Context, id string) (*model.Unit, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, unitserrors.ErrNotFound
}

func (m *mockUnitRepository) FindAll(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filters, limit, offset)
	}
	return []*model.Unit{}, nil
}

func (m *mockUnitRepository) Count(ctx context.Context, filters *model.UnitFilters) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filters)
	}
	return 0, nil
}

func (m *mockUnitRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockUnitRepository) Update(ctx context.Context, id string, unit *model.Unit) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockUnitRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	return nil
}

func (m *mockUnitRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockBookingCounter struct {
	count int64
}

func (m *mockBookingCounter) CountActiveByUnit(ctx context.Context, unitID string) (int64, error) {
	return m.count, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func newTestService(repo *mockUnitRepository, counter *mockBookingCounter, cfg *config.Config) UnitService {
	return NewUnitService(repo, counter, validator.NewUnitValidator(cfg.Log), cfg)
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_SanitizesBeforeValidation(t *testing.T) {
	cfg := testConfig(t)
	var stored *model.Unit
	repo := &mockUnitRepository{
		createFunc: func(ctx context.Context, unit *model.Unit) error {
			stored = unit
			return nil
		},
	}
	svc := newTestService(repo, &mockBookingCounter{}, cfg)

	unit := &model.Unit{
		Name:         "  Toyota   Vios ",
		Brand:        "Toyota",
		Year:         2024,
		Plate:        "ncr 4821",
		Transmission: "AUTOMATIC",
		Capacity:     5,
		PricePerDay:  3500,
	}

	if err := svc.Create(context.Background(), unit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Name != "Toyota Vios" {
		t.Errorf("expected normalized name, got %q", stored.Name)
	}
	if stored.Plate != "NCR-4821" {
		t.Errorf("expected canonical plate, got %q", stored.Plate)
	}
	if stored.Status != config.UnitAvailable {
		t.Errorf("expected default status %q, got %q", config.UnitAvailable, stored.Status)
	}
}

func TestCreate_DuplicatePlate(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockUnitRepository{
		createFunc: func(ctx context.Context, unit *model.Unit) error {
			return unitserrors.ErrDuplicatePlate
		},
	}
	svc := newTestService(repo, &mockBookingCounter{}, cfg)

	unit := &model.Unit{
		Name:         "Toyota Vios",
		Brand:        "Toyota",
		Year:         2024,
		Plate:        "NCR-4821",
		Transmission: "AUTOMATIC",
		Capacity:     5,
		PricePerDay:  3500,
	}

	err := svc.Create(context.Background(), unit)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreate_InvalidUnitRejected(t *testing.T) {
	cfg := testConfig(t)
	svc := newTestService(&mockUnitRepository{}, &mockBookingCounter{}, cfg)

	unit := &model.Unit{
		Name:         "Toyota Vios",
		Brand:        "Toyota",
		Year:         time.Now().Year() + 5,
		Plate:        "NCR-4821",
		Transmission: "AUTOMATIC",
		Capacity:     5,
		PricePerDay:  3500,
	}

	err := svc.Create(context.Background(), unit)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := appErr.Details["Year"]; !ok {
		t.Errorf("expected Year detail, got %v", appErr.Details)
	}
}

// ────────────────────────────────────────────────
// Delete
// ────────────────────────────────────────────────

func TestDelete_RefusedWhileBooked(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockUnitRepository{}
	svc := newTestService(repo, &mockBookingCounter{count: 3}, cfg)

	err := svc.Delete(context.Background(), "3f2e1d0c-9b8a-4766-8554-3f2e1d0c9b8a")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if appErr.Details["active_bookings"] != int64(3) {
		t.Errorf("expected active_bookings detail 3, got %v", appErr.Details)
	}
	if repo.deleteCalls != 0 {
		t.Errorf("expected no delete call, got %d", repo.deleteCalls)
	}
}

func TestDelete_AllowedWhenIdle(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockUnitRepository{}
	svc := newTestService(repo, &mockBookingCounter{count: 0}, cfg)

	if err := svc.Delete(context.Background(), "3f2e1d0c-9b8a-4766-8554-3f2e1d0c9b8a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deleteCalls != 1 {
		t.Errorf("expected 1 delete call, got %d", repo.deleteCalls)
	}
}

// ────────────────────────────────────────────────
// GetAll
// ────────────────────────────────────────────────

func TestGetAll_ConcurrentCountAndFind(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockUnitRepository{
		countFunc: func(ctx context.Context, filters *model.UnitFilters) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Unit{
				{ID: "1", Name: "Unit 1"},
				{ID: "2", Name: "Unit 2"},
			}, nil
		},
	}
	svc := newTestService(repo, &mockBookingCounter{}, cfg)

	units, count, err := svc.GetAll(context.Background(), &model.UnitFilters{}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(units) != 2 {
		t.Errorf("expected 2 units, got %d", len(units))
	}
}

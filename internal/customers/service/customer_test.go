package service

import (
	"context"
	"errors"
	"testing"

	customerserrors "fleetrent/internal/customers/errors"
	"fleetrent/internal/customers/validator"
	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"
)

type mockCustomerRepository struct {
	createFunc      func(ctx context.Context, customer *model.Customer) error
	findByEmailFunc func(ctx context.Context, email string) (model.CustomerLookup, error)
	updateFunc      func(ctx context.Context, id string, customer *model.Customer) error
	createCalls     int
	updateCalls     int
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, customer)
	}
	customer.ID = "b1a2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	return nil, customerserrors.ErrNotFound
}

func (m *mockCustomerRepository) FindByEmail(ctx context.Context, email string) (model.CustomerLookup, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return model.CustomerLookup{}, nil
}

func (m *mockCustomerRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, error) {
	return []*model.Customer{}, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, id string, customer *model.Customer) error {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, customer)
	}
	return nil
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

func newTestService(repo *mockCustomerRepository, cfg *config.Config) CustomerService {
	return NewCustomerService(repo, validator.NewCustomerValidator(cfg.Log), cfg)
}

func TestUpsert_CreatesWhenEmailUnknown(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockCustomerRepository{}
	svc := newTestService(repo, cfg)

	customer := &model.Customer{
		FullName: "  Ana   Reyes ",
		Phone:    "09171234567",
		Email:    " Ana.Reyes@Example.COM ",
	}

	result, err := svc.Upsert(context.Background(), customer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.createCalls != 1 || repo.updateCalls != 0 {
		t.Errorf("expected create only, got create=%d update=%d", repo.createCalls, repo.updateCalls)
	}
	if result.FullName != "Ana Reyes" {
		t.Errorf("expected normalized name, got %q", result.FullName)
	}
	if result.Email != "ana.reyes@example.com" {
		t.Errorf("expected normalized email, got %q", result.Email)
	}
	if result.Phone != "+639171234567" {
		t.Errorf("expected E.164 phone, got %q", result.Phone)
	}
}

func TestUpsert_UpdatesExistingByEmail(t *testing.T) {
	cfg := testConfig(t)
	existing := &model.Customer{
		ID:       "b1a2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d",
		FullName: "Ana R.",
		Phone:    "+639170000000",
		Email:    "ana.reyes@example.com",
	}
	repo := &mockCustomerRepository{
		findByEmailFunc: func(ctx context.Context, email string) (model.CustomerLookup, error) {
			return model.CustomerLookup{Found: true, Customer: existing}, nil
		},
	}
	svc := newTestService(repo, cfg)

	result, err := svc.Upsert(context.Background(), &model.Customer{
		FullName: "Ana Reyes-Santos",
		Phone:    "09171234567",
		Email:    "ana.reyes@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updateCalls != 1 || repo.createCalls != 0 {
		t.Errorf("expected update only, got create=%d update=%d", repo.createCalls, repo.updateCalls)
	}
	if result.ID != existing.ID {
		t.Errorf("expected existing ID to be kept, got %q", result.ID)
	}
	if result.FullName != "Ana Reyes-Santos" {
		t.Errorf("expected refreshed name, got %q", result.FullName)
	}
	if result.Phone != "+639171234567" {
		t.Errorf("expected refreshed phone, got %q", result.Phone)
	}
}

func TestUpsert_NoEmailAlwaysCreates(t *testing.T) {
	cfg := testConfig(t)
	lookupCalled := false
	repo := &mockCustomerRepository{
		findByEmailFunc: func(ctx context.Context, email string) (model.CustomerLookup, error) {
			lookupCalled = true
			return model.CustomerLookup{}, nil
		},
	}
	svc := newTestService(repo, cfg)

	_, err := svc.Upsert(context.Background(), &model.Customer{
		FullName: "Walk In",
		Phone:    "09171234567",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lookupCalled {
		t.Error("email lookup must be skipped for customers without an email")
	}
	if repo.createCalls != 1 {
		t.Errorf("expected 1 create call, got %d", repo.createCalls)
	}
}

func TestUpsert_LostRaceOnEmail(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockCustomerRepository{
		createFunc: func(ctx context.Context, customer *model.Customer) error {
			return customerserrors.ErrDuplicateEmail
		},
	}
	svc := newTestService(repo, cfg)

	_, err := svc.Upsert(context.Background(), &model.Customer{
		FullName: "Ana Reyes",
		Phone:    "09171234567",
		Email:    "ana.reyes@example.com",
	})

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpsert_InvalidCustomerRejected(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockCustomerRepository{}
	svc := newTestService(repo, cfg)

	_, err := svc.Upsert(context.Background(), &model.Customer{
		FullName: "An",
		Phone:    "09171234567",
	})

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no create call, got %d", repo.createCalls)
	}
}

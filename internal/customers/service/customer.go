package service

import (
	"context"
	"errors"
	"sync"

	customerserrors "fleetrent/internal/customers/errors"
	"fleetrent/internal/customers/repository"
	"fleetrent/internal/customers/validator"
	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/model"
	"fleetrent/pkg/sanitizer"
)

type CustomerService interface {
	// Upsert creates the customer, or updates name and phone when a customer
	// with the same email already exists. Customers without an email are
	// always created fresh.
	Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error)
}

type customerService struct {
	repo      repository.CustomerRepository
	validator *validator.CustomerValidator
	cfg       *config.Config
}

func NewCustomerService(
	repo repository.CustomerRepository,
	validator *validator.CustomerValidator,
	cfg *config.Config,
) CustomerService {
	return &customerService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *customerService) Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	s.sanitize(customer)
	if err := s.validate(customer); err != nil {
		return nil, err
	}

	if customer.Email != "" {
		lookup, err := s.repo.FindByEmail(ctx, customer.Email)
		if err != nil {
			s.cfg.Log.Error("Failed to look up customer by email", "error", err)
			return nil, apperrors.Internal("Failed to look up customer", err)
		}

		if lookup.Found {
			existing := lookup.Customer
			existing.FullName = customer.FullName
			existing.Phone = customer.Phone

			if err := s.repo.Update(ctx, existing.ID, existing); err != nil {
				s.cfg.Log.Error("Failed to update customer", "id", existing.ID, "error", err)
				return nil, apperrors.Internal("Failed to update customer", err)
			}

			s.cfg.Log.Info("Customer updated via upsert", "id", existing.ID)
			return existing, nil
		}
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, customerserrors.ErrDuplicateEmail) {
			// Lost a race with a concurrent upsert for the same email.
			return nil, apperrors.Conflict("A customer with this email already exists")
		}
		s.cfg.Log.Error("Failed to create customer", "error", err)
		return nil, apperrors.Internal("Failed to create customer", err)
	}

	s.cfg.Log.Info("Customer created successfully", "id", customer.ID)
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}

	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error) {
	var count int64
	var customers []*model.Customer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count customers", "error", errCount)
			errCount = apperrors.Internal("Failed to count customers", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		customers, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list customers", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve customers", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return customers, count, nil
}

// --- Helpers ---

func (s *customerService) sanitize(c *model.Customer) {
	c.FullName = sanitizer.Normalize(c.FullName)
	c.Phone = sanitizer.SanitizePhone(c.Phone)
	c.Email = sanitizer.NormalizeEmail(c.Email)
}

func (s *customerService) validate(customer *model.Customer) error {
	if err := s.validator.Validate(customer); err != nil {
		s.cfg.Log.Warn("Customer validation failed", "error", err)
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return apperrors.Validation("Customer validation failed", validationErrs.Details())
		}
		return apperrors.Validation("Customer validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"sync"

	unitserrors "fleetrent/internal/units/errors"
	"fleetrent/internal/units/repository"
	"fleetrent/internal/units/validator"
	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/model"
	"fleetrent/pkg/sanitizer"
)

// ActiveBookingCounter reports how many active bookings occupy a unit. Wired
// to the bookings repository so unit deletion can refuse while the calendar
// is in use.
type ActiveBookingCounter interface {
	CountActiveByUnit(ctx context.Context, unitID string) (int64, error)
}

type UnitService interface {
	Create(ctx context.Context, unit *model.Unit) error
	GetByID(ctx context.Context, id string) (*model.Unit, error)
	GetAll(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, int64, error)
	Update(ctx context.Context, id string, updates *model.UnitUpdate) error
	Delete(ctx context.Context, id string) error
}

type unitService struct {
	repo      repository.UnitRepository
	bookings  ActiveBookingCounter
	validator *validator.UnitValidator
	cfg       *config.Config
}

func NewUnitService(
	repo repository.UnitRepository,
	bookings ActiveBookingCounter,
	validator *validator.UnitValidator,
	cfg *config.Config,
) UnitService {
	return &unitService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *unitService) Create(ctx context.Context, unit *model.Unit) error {
	s.applyDefaults(unit)
	s.sanitize(unit)
	if err := s.validate(unit); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, unit); err != nil {
		if errors.Is(err, unitserrors.ErrDuplicatePlate) {
			return apperrors.Conflict("A unit with this plate already exists")
		}
		s.cfg.Log.Error("Failed to create unit", "plate", unit.Plate, "error", err)
		return apperrors.Internal("Failed to create unit", err)
	}

	s.cfg.Log.Info("Unit created successfully",
		"id", unit.ID,
		"plate", unit.Plate,
		"name", unit.Name,
	)
	return nil
}

func (s *unitService) GetByID(ctx context.Context, id string) (*model.Unit, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Unit ID cannot be empty")
	}

	unit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, unitserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Unit", id)
		}
		return nil, apperrors.Internal("Failed to retrieve unit", err)
	}

	return unit, nil
}

func (s *unitService) GetAll(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, int64, error) {
	var count int64
	var units []*model.Unit
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filters)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count units", "error", errCount)
			errCount = apperrors.Internal("Failed to count units", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		units, errFind = s.repo.FindAll(ctx, filters, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list units", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve units", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return units, count, nil
}

func (s *unitService) Update(ctx context.Context, id string, updates *model.UnitUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Unit ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, unitserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Unit", id)
		}
		return apperrors.Internal("Failed to check unit existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Unit update validation failed", "id", id, "error", err)
		return validationError(err)
	}

	merged := s.mergeUnitUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, unitserrors.ErrDuplicatePlate) {
			return apperrors.Conflict("A unit with this plate already exists")
		}
		if errors.Is(err, unitserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Unit", id)
		}
		s.cfg.Log.Error("Failed to update unit", "id", id, "error", err)
		return apperrors.Internal("Failed to update unit", err)
	}

	s.cfg.Log.Info("Unit updated successfully", "id", id)
	return nil
}

func (s *unitService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Unit ID cannot be empty")
	}

	active, err := s.bookings.CountActiveByUnit(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to count active bookings for unit", "id", id, "error", err)
		return apperrors.Internal("Failed to check unit bookings", err)
	}
	if active > 0 {
		return apperrors.Conflict("Unit has active bookings and cannot be deleted").
			WithDetails(map[string]any{"active_bookings": active})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, unitserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Unit", id)
		}
		return apperrors.Internal("Failed to delete unit", err)
	}

	s.cfg.Log.Info("Unit deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *unitService) sanitize(u *model.Unit) {
	u.Name = sanitizer.Normalize(u.Name)
	u.Brand = sanitizer.Normalize(u.Brand)
	u.Plate = sanitizer.SanitizePlate(u.Plate)
	u.ImageURL = sanitizer.SanitizeURL(u.ImageURL)
}

func (s *unitService) applyDefaults(u *model.Unit) {
	if u.Status == "" {
		u.Status = config.UnitAvailable
	}
}

func (s *unitService) mergeUnitUpdates(existing *model.Unit, updates *model.UnitUpdate) *model.Unit {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Brand != "" {
		merged.Brand = updates.Brand
	}
	if updates.Year != nil {
		merged.Year = *updates.Year
	}
	if updates.Plate != "" {
		merged.Plate = updates.Plate
	}
	if updates.Transmission != "" {
		merged.Transmission = updates.Transmission
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.PricePerDay != nil {
		merged.PricePerDay = *updates.PricePerDay
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.ImageURL != nil {
		merged.ImageURL = *updates.ImageURL
	}

	return &merged
}

func (s *unitService) validate(unit *model.Unit) error {
	if err := s.validator.Validate(unit); err != nil {
		s.cfg.Log.Warn("Unit validation failed", "error", err)
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("Unit validation failed", validationErrs.Details())
	}
	return apperrors.Validation("Unit validation failed", map[string]any{"error": err.Error()})
}

package validator

import (
	"testing"
	"time"

	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validUnit() *model.Unit {
	return &model.Unit{
		Name:         "Toyota Vios",
		Brand:        "Toyota",
		Year:         2024,
		Plate:        "NCR-4821",
		Transmission: "AUTOMATIC",
		Capacity:     5,
		PricePerDay:  3500,
		Status:       "AVAILABLE",
	}
}

func TestValidate(t *testing.T) {
	v := NewUnitValidator(testLogger())

	tests := []struct {
		name      string
		mutate    func(u *model.Unit)
		wantError bool
		wantField string
	}{
		{
			name:      "valid unit",
			mutate:    func(u *model.Unit) {},
			wantError: false,
		},
		{
			name:      "name too short",
			mutate:    func(u *model.Unit) { u.Name = "ab" },
			wantError: true,
			wantField: "Name",
		},
		{
			name:      "year beyond next year",
			mutate:    func(u *model.Unit) { u.Year = time.Now().Year() + 2 },
			wantError: true,
			wantField: "Year",
		},
		{
			name:      "next-year model accepted",
			mutate:    func(u *model.Unit) { u.Year = time.Now().Year() + 1 },
			wantError: false,
		},
		{
			name:      "plate with invalid characters",
			mutate:    func(u *model.Unit) { u.Plate = "NCR_4821!" },
			wantError: true,
			wantField: "Plate",
		},
		{
			name:      "plate ending in hyphen",
			mutate:    func(u *model.Unit) { u.Plate = "NCR-4821-" },
			wantError: true,
			wantField: "Plate",
		},
		{
			name:      "unknown transmission",
			mutate:    func(u *model.Unit) { u.Transmission = "CVT" },
			wantError: true,
			wantField: "Transmission",
		},
		{
			name:      "zero price",
			mutate:    func(u *model.Unit) { u.PricePerDay = 0 },
			wantError: true,
			wantField: "PricePerDay",
		},
		{
			name:      "capacity over limit",
			mutate:    func(u *model.Unit) { u.Capacity = 101 },
			wantError: true,
			wantField: "Capacity",
		},
		{
			name:      "unknown status",
			mutate:    func(u *model.Unit) { u.Status = "PARKED" },
			wantError: true,
			wantField: "Status",
		},
		{
			name:      "bad image url",
			mutate:    func(u *model.Unit) { u.ImageURL = "not a url" },
			wantError: true,
			wantField: "ImageURL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := validUnit()
			tt.mutate(unit)

			err := v.Validate(unit)
			if tt.wantError && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
			if tt.wantField != "" {
				verrs, ok := err.(ValidationErrors)
				if !ok {
					t.Fatalf("expected ValidationErrors, got %T", err)
				}
				if _, present := verrs.Details()[tt.wantField]; !present {
					t.Errorf("expected detail for %s, got %v", tt.wantField, verrs.Details())
				}
			}
		})
	}
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	v := NewUnitValidator(testLogger())

	if err := v.ValidateUpdate(&model.UnitUpdate{}); err != nil {
		t.Fatalf("empty update must pass shape validation: %v", err)
	}

	badYear := time.Now().Year() + 5
	err := v.ValidateUpdate(&model.UnitUpdate{Year: &badYear})
	if err == nil {
		t.Fatal("expected error for far-future year")
	}
}

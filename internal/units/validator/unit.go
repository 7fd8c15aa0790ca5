package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Plates are sanitized to uppercase with hyphens before validation, so the
// pattern only needs to accept the canonical form.
var plateRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,18}[A-Z0-9]$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details maps field names to their messages for the error response body.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type UnitValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUnitValidator(log *logger.Logger) *UnitValidator {
	v := validator.New()

	if err := v.RegisterValidation("unit_year", validateUnitYear); err != nil {
		log.Fatal("Failed to register 'unit_year' validator",
			"error", err,
		)
	}

	if err := v.RegisterValidation("plate", validatePlate); err != nil {
		log.Fatal("Failed to register 'plate' validator",
			"error", err,
		)
	}

	log.Info("Unit validator initialized successfully")

	return &UnitValidator{
		validate: v,
		logger:   log,
	}
}

// validateUnitYear allows next-year models but nothing beyond.
func validateUnitYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year <= time.Now().Year()+1
}

func validatePlate(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(fl.Field().String())
}

func (v *UnitValidator) Validate(unit *model.Unit) error {
	if err := v.validate.Struct(unit); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *UnitValidator) ValidateUpdate(update *model.UnitUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *UnitValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "unit_year":
			message = fmt.Sprintf("%s cannot be later than next year", err.Field())
		case "plate":
			message = fmt.Sprintf("%s must contain only letters, digits and hyphens", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	reserrors "hotelier/internal/reservations/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

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

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	return &ReservationValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateRequest checks the booking input, including the stay length: a
// booking must cover at least one night at date precision.
func (v *ReservationValidator) ValidateRequest(req *model.ReservationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if req.Nights() < 1 {
		return reserrors.ErrInvalidDateRange
	}

	return nil
}

func (v *ReservationValidator) ValidateSearch(criteria *model.SearchCriteria) error {
	if err := v.validate.Struct(criteria); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if !criteria.CheckOutDate.After(criteria.CheckInDate) {
		return reserrors.ErrInvalidDateRange
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var result ValidationErrors
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = fmt.Sprintf("must have at least %s item(s) or characters", err.Param())
		case "max":
			message = fmt.Sprintf("must have at most %s item(s) or characters", err.Param())
		case "mongodb":
			message = "must be a valid object ID"
		case "gtfield":
			message = fmt.Sprintf("must be after %s", err.Param())
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", err.Param())
		case "email":
			message = "must be a valid email address"
		case "e164":
			message = "must be a valid phone number in E.164 format"
		default:
			message = fmt.Sprintf("failed validation: %s", err.Tag())
		}
		result = append(result, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}
	return result
}

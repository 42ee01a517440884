package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

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

type HotelValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHotelValidator(log *logger.Logger) *HotelValidator {
	return &HotelValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *HotelValidator) Validate(hotel *model.Hotel) error {
	if err := v.validate.Struct(hotel); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	seen := make(map[string]struct{}, len(hotel.Rooms))
	for i := range hotel.Rooms {
		if err := v.checkRoom(&hotel.Rooms[i]); err != nil {
			return err
		}
		if _, dup := seen[hotel.Rooms[i].RoomNumber]; dup {
			return ValidationErrors{
				ValidationError{
					Field:   "Rooms",
					Message: fmt.Sprintf("duplicate room number %q", hotel.Rooms[i].RoomNumber),
				},
			}
		}
		seen[hotel.Rooms[i].RoomNumber] = struct{}{}
	}

	return nil
}

func (v *HotelValidator) ValidateRoom(room *model.Room) error {
	if err := v.validate.Struct(room); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.checkRoom(room)
}

func (v *HotelValidator) ValidateUpdate(update *model.HotelUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// checkRoom covers what struct tags cannot: money signs and the
// status/isAvailable consistency invariant.
func (v *HotelValidator) checkRoom(room *model.Room) error {
	if room.PricePerNight.IsNegative() {
		return ValidationErrors{
			ValidationError{Field: "PricePerNight", Message: "price_per_night cannot be negative"},
		}
	}
	if room.Taxes.IsNegative() {
		return ValidationErrors{
			ValidationError{Field: "Taxes", Message: "taxes cannot be negative"},
		}
	}
	if room.IsAvailable != (room.Status == model.RoomStatusAvailable) {
		return ValidationErrors{
			ValidationError{
				Field:   "Status",
				Message: fmt.Sprintf("is_available must reflect status %q", room.Status),
			},
		}
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +573001234567)", err.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

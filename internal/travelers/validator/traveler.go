package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

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

type TravelerValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTravelerValidator(log *logger.Logger) *TravelerValidator {
	return &TravelerValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *TravelerValidator) Validate(traveler *model.Traveler) error {
	if err := v.validate.Struct(traveler); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if traveler.BirthDate.After(time.Now()) {
		return ValidationErrors{
			ValidationError{Field: "BirthDate", Message: "birth_date cannot be in the future"},
		}
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
			message = fmt.Sprintf("must have at least %s character(s)", err.Param())
		case "max":
			message = fmt.Sprintf("must have at most %s character(s)", err.Param())
		case "mongodb":
			message = "must be a valid object ID"
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

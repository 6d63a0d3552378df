package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks s against its validate tags and returns a single readable
// error listing every failed field.
func Validate(s any) error {
	msgs := ValidateStruct(s)
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidateStruct validates a struct and returns one message per failed field
func ValidateStruct(s any) []string {
	var msgs []string

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatValidationError(fe))
	}
	return msgs
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	unit := "items"
	if err.Kind() == reflect.String {
		unit = "characters"
	}
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must contain exactly %s %s", field, err.Param(), unit)
	case "min":
		return fmt.Sprintf("%s must contain at least %s %s", field, err.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must contain at most %s %s", field, err.Param(), unit)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

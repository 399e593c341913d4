package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateStruct runs the validator and folds field errors into one ValidationError.
func ValidateStruct(v *validator.Validate, payload interface{}) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationError(err.Error())
	}

	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		if fe.Tag() == "required" || strings.HasPrefix(fe.Tag(), "required_") {
			msgs[i] = fmt.Sprintf("'%s' is required", fe.Field())
			continue
		}
		msgs[i] = fmt.Sprintf("invalid '%s' with value '%v'", fe.Field(), fe.Value())
	}
	return ValidationError(strings.Join(msgs, ", "))
}

package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and folds all failures into a
// single ValidationError.
func ValidateRequest(request interface{}) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewValidationError(err.Error())
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, fmt.Sprintf("field %s failed on the %s rule", fieldErr.Field(), fieldErr.Tag()))
	}
	return NewValidationError(strings.Join(details, "; "))
}

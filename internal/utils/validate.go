package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/product-analytics/internal/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks the `validate` tags of v and returns the first
// violation as a validation error attributed to op.
func ValidateStruct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return errs.NewInvalid(op, fe.Field(), describe(fe))
	}
	return errs.NewInvalid(op, "", err.Error())
}

// ValidateEmail reports whether email is a syntactically valid address.
func ValidateEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s rule", fe.Tag())
	}
}

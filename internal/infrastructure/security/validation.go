package security

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"github.com/shopspring/decimal"
)

// Validator checks decoded request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the kitchen rules registered
func NewValidator() *Validator {
	validate := validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Numeric tags (gte, lte) compare decimals by value
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	validate.RegisterValidation("plain_text", validatePlainText)

	return &Validator{validate: validate}
}

// Struct validates s and returns a VALIDATION_FAILED error listing every
// offending field
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	out := make([]apperrors.ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = apperrors.ValidationError{
			Field:   fe.Namespace(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: message(fe),
		}
	}
	return apperrors.NewValidationErrors(out)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	case "plain_text":
		return fmt.Sprintf("%s must not contain markup", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// validatePlainText rejects markup in names
func validatePlainText(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for _, pattern := range []string{"<", ">", "javascript:", "vbscript:"} {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

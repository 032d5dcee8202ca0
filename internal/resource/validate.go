package resource

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports the first invalid field of a payload.
type ValidationError struct {
	Resource string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}

var (
	validatorsOnce sync.Once
	// formatRules checks every present field (`validate` tags).
	formatRules *validator.Validate
	// createRules checks fields a create must carry (`create` tags).
	createRules *validator.Validate
)

func validators() (*validator.Validate, *validator.Validate) {
	validatorsOnce.Do(func() {
		formatRules = newValidator("validate")
		createRules = newValidator("create")
	})
	return formatRules, createRules
}

func newValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks p for method m. Creates must carry every required field;
// updates only validate what is present. Deletes carry no payload.
func Validate(m Method, p Payload) error {
	if m == Delete || p == nil {
		return nil
	}
	format, create := validators()

	if m == Create {
		if err := create.Struct(p); err != nil {
			return toValidationError(p, err)
		}
	}
	if err := format.Struct(p); err != nil {
		return toValidationError(p, err)
	}
	return nil
}

func toValidationError(p Payload, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%s: validating payload: %w", p.ResourceName(), err)
	}
	fe := fieldErrs[0]
	return &ValidationError{
		Resource: p.ResourceName(),
		Field:    fe.Field(),
		Message:  describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, strings.ReplaceAll(fe.Param(), "'", ""))
	case "email":
		return f + " must be a valid email address"
	case "datetime":
		return fmt.Sprintf("%s must be a date in the form %s", f, fe.Param())
	case "iso4217":
		return f + " must be an ISO 4217 currency code"
	default:
		return fmt.Sprintf("%s is invalid (%s)", f, fe.Tag())
	}
}

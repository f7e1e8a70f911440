package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes a single failed validation rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates all failures for a request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// ToValidationErrors converts go-playground validator errors into our type.
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errors
	}

	return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "unknown"}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "future_date":
		return "must be in the future"
	case "academic_year":
		return "must be formatted like 2025/2026"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Validator wraps struct validation and the committee eligibility validator.
type Validator struct {
	validate    *validator.Validate
	eligibility *EligibilityValidator
}

func New() *Validator {
	v := &Validator{
		validate:    validator.New(),
		eligibility: NewEligibilityValidator(),
	}
	v.registerCustomRules()
	return v
}

// Validate runs struct tag validation and returns ValidationErrors (nil when
// the struct is valid).
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// GetEligibilityValidator exposes the committee rule-checker.
func (v *Validator) GetEligibilityValidator() *EligibilityValidator {
	return v.eligibility
}

func (v *Validator) registerCustomRules() {
	// Postponement dates must lie in the future. Accepts time.Time and
	// *time.Time; a nil pointer passes (optional field).
	v.validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true
		}

		var when time.Time
		if field.Kind() == reflect.Ptr {
			when = field.Elem().Interface().(time.Time)
		} else {
			when = field.Interface().(time.Time)
		}
		return when.After(time.Now())
	})

	// Academic years are recorded as "YYYY/YYYY" with consecutive years.
	v.validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		var from, to int
		if _, err := fmt.Sscanf(value, "%4d/%4d", &from, &to); err != nil {
			return false
		}
		return to == from+1
	})

	// Evaluation semesters run 1..20.
	v.validate.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		semester := fl.Field().Int()
		return semester >= 1 && semester <= 20
	})
}

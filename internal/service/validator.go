package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

var simpleEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// preferredDateLayouts are the accepted ISO-8601 shapes, tried in order.
var preferredDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseISODate parses a calendar date or date-time. time.Parse rejects
// impossible dates such as 2025-02-30.
func parseISODate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range preferredDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Validator applies struct tag rules and turns failures into ordered field violations.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the custom tags and JSON field naming.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("iso8601date", func(fl validator.FieldLevel) bool {
		_, ok := parseISODate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return simpleEmailPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Check validates input and returns its violations in struct field order.
// messages overrides the reason per JSON field name.
func (v *Validator) Check(input any, messages map[string]string) []apperrors.FieldViolation {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperrors.FieldViolation{{Field: "body", Reason: "Invalid request payload"}}
	}

	violations := make([]apperrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reason, ok := messages[fe.Field()]
		if !ok {
			reason = defaultReason(fe)
		}
		violations = append(violations, apperrors.FieldViolation{Field: fe.Field(), Reason: reason})
	}
	return violations
}

// validationFailed wraps violations in the 400 error, or returns nil when there are none.
func validationFailed(violations []apperrors.FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	return apperrors.NewValidationError("Validation failed", violations)
}

func defaultReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email", "simpleemail":
		return "Please provide a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "iso8601date":
		return "Please provide a valid date"
	default:
		return "Invalid value"
	}
}

func allowedSet[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

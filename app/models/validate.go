package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return lowerFirst(fld.Name)
		}
		return name
	})
	return v
}

// Validator returns the shared validator instance, so request types outside
// this package are checked with the same field naming rules.
func Validator() *validator.Validate {
	return validate
}

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid post: " + e.Reason
	}
	return "invalid post: " + e.Field + " " + e.Reason
}

// ValidationErrorFrom converts validator output into a *ValidationError.
// Any other error and nil are returned unchanged.
func ValidationErrorFrom(err error) error {
	return validationError(err)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := fe.Namespace()
	// drop the struct name, keep the json path
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	reason := "is invalid"
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = "must not be empty"
	}
	return &ValidationError{Field: field, Reason: reason}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

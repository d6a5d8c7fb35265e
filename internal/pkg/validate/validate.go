// Package validate enforces the `validate:` struct tags on service inputs and
// turns failures into domain.ValidationError.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"credit-admin/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the domain tags registered
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report fields by their json name
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("loan_purpose", func(fl validator.FieldLevel) bool {
			return domain.LoanPurpose(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).IsValid()
		})

		instance = v
	})
	return instance
}

// Struct validates s. The returned error is a *domain.ValidationError when a
// rule fails.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("cannot exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "loan_purpose":
		return "must be one of the accepted loan purposes"
	case "role":
		return "must be a known role"
	case "url":
		return "must be a valid URL"
	}
	return fmt.Sprintf("failed %s rule", fe.Tag())
}

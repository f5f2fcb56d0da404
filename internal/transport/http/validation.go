package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// RequestValidator validates request DTOs using struct tags
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator with the custom rules of the API
func NewRequestValidator() *RequestValidator {
	v := validator.New()

	// Register custom validators
	_ = v.RegisterValidation("locale", isKnownLocale)
	_ = v.RegisterValidation("instrument_category", isInstrumentCategory)
	_ = v.RegisterValidation("return_type", isReturnType)

	// amounts validate as their raw text; unset amounts are empty
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if a, ok := field.Interface().(locale.Amount); ok && a.IsSet() {
			return a.String()
		}
		return nil
	}, locale.Amount{})

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: v}
}

// Validate checks a request and returns a VALIDATION_FAILED APIError
// listing every violated field
func (rv *RequestValidator) Validate(req interface{}) error {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe), Constraint: formatConstraint(fe)})
	}
	return ValidationFailed(fields...)
}

// fieldPath drops the root struct name: "CompareRequest.a.category" -> "a.category"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatConstraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("must be %s %s", fe.Tag(), fe.Param())
	case "gtfield":
		return "must be greater than " + fe.Param()
	case "datetime":
		return "must be a date formatted " + fe.Param()
	case "locale":
		return "must be one of: " + strings.Join(locale.Available(), ", ")
	case "instrument_category":
		return "unknown instrument category"
	case "return_type":
		return "unknown return type"
	default:
		return "failed " + fe.Tag()
	}
}

func isKnownLocale(fl validator.FieldLevel) bool {
	_, err := locale.Lookup(fl.Field().String())
	return err == nil
}

func isInstrumentCategory(fl validator.FieldLevel) bool {
	_, ok := domain.InstrumentCategory(fl.Field().String()).Info()
	return ok
}

func isReturnType(fl validator.FieldLevel) bool {
	_, ok := domain.ReturnType(fl.Field().String()).Info()
	return ok
}

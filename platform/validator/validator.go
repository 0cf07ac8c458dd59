// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"transit_console_backend/platform/geo"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the coordinate tags registered:
//
//	dms        string holding DMS text
//	coordinate string holding decimal or DMS text
//	geolat     latitude within [-90, 90] (float or coordinate text)
//	geolng     longitude within [-180, 180] (float or coordinate text)
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	mustRegister(v, "dms", func(fl validator.FieldLevel) bool {
		return geo.IsDMSFormat(fl.Field().String())
	})
	mustRegister(v, "coordinate", func(fl validator.FieldLevel) bool {
		_, ok := geo.ParseCoordinate(fl.Field().String())
		return ok
	})
	mustRegister(v, "geolat", func(fl validator.FieldLevel) bool {
		value, ok := coordinateValue(fl.Field())
		return ok && geo.ValidLatitude(value)
	})
	mustRegister(v, "geolng", func(fl validator.FieldLevel) bool {
		value, ok := coordinateValue(fl.Field())
		return ok && geo.ValidLongitude(value)
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func coordinateValue(field reflect.Value) (float64, bool) {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float(), true
	case reflect.String:
		return geo.ParseCoordinate(field.String())
	default:
		return 0, false
	}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// FieldErrors flattens validation errors into field -> message, keyed by the
// JSON name of the field. Errors that are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "dms":
		return `must look like 6° 48' 44.40" S`
	case "coordinate":
		return "must be decimal degrees or DMS text"
	case "geolat":
		return "must be a latitude between -90 and 90"
	case "geolng":
		return "must be a longitude between -180 and 180"
	default:
		return "is invalid"
	}
}

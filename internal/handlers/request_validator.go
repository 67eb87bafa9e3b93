package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"customerapi/internal/models"

	"github.com/go-playground/validator/v10"
)

// newRequestValidator returns a validator that reports fields by their wire names
// and knows the listing enums.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("orderby", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseOrderBy(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("sortdir", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseSortDirection(fl.Field().String())
		return ok
	})
	return v
}

// validateRequest converts validator failures into a requestValidationError.
func validateRequest(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string][]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = append(fields[e.Field()], fieldMessage(e))
	}
	return &requestValidationError{fields: fields}
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "eqfield":
		return "confirmPassword must match password"
	case "orderby":
		return fmt.Sprintf("%s must be one of firstName, surname, email", e.Field())
	case "sortdir":
		return fmt.Sprintf("%s must be one of asc, desc", e.Field())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

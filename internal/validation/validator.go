// Package validation wraps go-playground/validator so handlers get
// field-level errors keyed by the JSON name clients actually sent.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var tagMessages = map[string]string{
	"required": "the field '%s' is required",
	"email":    "the field '%s' must be a valid email address",
	"uuid":     "the field '%s' must be a valid UUID",
	"uri":      "the field '%s' must be a valid URI",
	"min":      "the field '%s' must be at least %s characters long",
	"max":      "the field '%s' must be no longer than %s",
	"gte":      "the field '%s' must be greater than or equal to %s",
	"lte":      "the field '%s' must be less than or equal to %s",
	"oneof":    "the field '%s' must be one of: %s",
	"datetime": "the field '%s' must match the format %s",
}

func message(jsonTag string, e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, jsonTag, e.Param())
		}
		return fmt.Sprintf(msg, jsonTag)
	}
	return fmt.Sprintf("the field '%s' is invalid: %s", jsonTag, e.Tag())
}

// Struct validates s (a pointer to a request struct) and returns a map of
// JSON field names to messages, or nil when the payload is valid.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Non-field error means a programming mistake (nil or non-struct).
		return map[string]string{"_": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	for _, e := range validationErrs {
		jsonTag := e.StructField()
		if field, ok := structType.FieldByName(e.StructField()); ok {
			if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
				jsonTag = tag
			}
		}
		fieldErrors[jsonTag] = message(jsonTag, e)
	}
	return fieldErrors
}

package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"
	username = "username"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case mx:
		return formatBound(field, err.Kind(), "less", err.Param())
	case mn:
		return formatBound(field, err.Kind(), "greater", err.Param())
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	case username:
		return fmt.Sprintf("%q can only contain letters, numbers, dots, dashes and underscores", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// formatBound words min/max failures. Numbers are compared by value, strings
// and slices by length.
func formatBound(field string, kind reflect.Kind, direction, param string) string {
	//exhaustive:ignore
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%q must be %s than or equal to %s", field, direction, param)
	case reflect.Slice:
		return fmt.Sprintf("%q length must be %s than or equal to %s %s", field, direction, param, plural("element", param))
	default:
		return fmt.Sprintf("%q length must be %s than or equal to %s %s", field, direction, param, plural("character", param))
	}
}

func plural(noun, count string) string {
	if count == "1" {
		return noun
	}
	return noun + "s"
}

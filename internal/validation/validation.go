package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldErrors maps a field name to its human-readable messages. It is the
// payload of every 422 response.
type FieldErrors map[string][]string

// Check validates an input shape. It returns nil when the input is valid;
// otherwise the field errors to hand back to the client. Handlers must call
// this before any repository mutation.
func Check(input interface{}) FieldErrors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"input": {"Invalid input"}}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := fieldPath(fe)
		out[field] = append(out[field], message(fe))
	}
	return out
}

// fieldPath strips the root struct name off the namespace so nested fields
// come out as e.g. "favoriteBook.key".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Ptr {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}

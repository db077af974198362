// Package validation validates plugin configuration maps against tagged structs.
package validation

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/reglet-dev/ohoo/domain/errors"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so errors match the keys the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig validates a config map against a struct with validation tags.
// It first marshals the map to JSON, then unmarshals it into the target struct,
// and finally runs the validator on the struct.
func ValidateConfig(config map[string]any, target interface{}) error {
	jsonBytes, err := json.Marshal(config)
	if err != nil {
		return &errors.ConfigError{Err: fmt.Errorf("failed to marshal config map: %w", err)}
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return &errors.ConfigError{Err: fmt.Errorf("failed to unmarshal config into struct: %w", err)}
	}

	return ValidateStruct(target)
}

// ValidateStruct runs the validator on an already populated struct and reports
// the first failing field as an *errors.ConfigError.
func ValidateStruct(target interface{}) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stdErrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &errors.ConfigError{Field: fe.Field(), Err: describe(fe)}
	}
	return &errors.ConfigError{Err: err}
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("is required")
	case "excluded_unless":
		return fmt.Errorf("is only allowed when %s", strings.Replace(fe.Param(), " ", " is ", 1))
	case "oneof":
		return fmt.Errorf("must be one of: %s", fe.Param())
	case "max":
		return fmt.Errorf("must be at most %s", fe.Param())
	default:
		return fmt.Errorf("failed '%s' validation", fe.Tag())
	}
}

// Package config reads typed options out of plugin configuration maps.
package config

import (
	"fmt"

	"github.com/reglet-dev/ohoo/domain/errors"
)

// Config represents plugin configuration as a key-value map.
type Config = map[string]any

// String returns config[key] as a string. A missing or nil value yields def;
// a value of any other type is a *errors.ConfigError naming key.
func String(config Config, key, def string) (string, error) {
	v, ok := config[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(key, "string", v)
	}
	return s, nil
}

// Bool returns config[key] as a bool, with the same rules as String.
func Bool(config Config, key string, def bool) (bool, error) {
	v, ok := config[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeError(key, "bool", v)
	}
	return b, nil
}

func typeError(key, want string, got any) error {
	return &errors.ConfigError{
		Field: key,
		Err:   fmt.Errorf("must be a %s, got %T", want, got),
	}
}

package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel matched by every ConfigError
var ErrInvalidConfig = errors.New("invalid puzzle configuration")

// ConfigError rejects a setup value before any piece is created
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

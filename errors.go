package marquee

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every *ConfigError via errors.Is.
var ErrConfig = errors.New("marquee: invalid configuration")

// ConfigError reports a declaration that can never animate correctly, such as
// a non-positive duration or a negative counter target. It is returned at
// construction time; nothing is clamped into a working-but-wrong state.
type ConfigError struct {
	// Op is the constructor that rejected the value (e.g. "NewCounter").
	Op string
	// Field names the offending field.
	Field string
	// Value is the rejected value.
	Value any
	// Reason is a short human-readable constraint.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", e.Op, e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrConfig) match any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configError(op, field string, value any, reason string) error {
	return &ConfigError{Op: op, Field: field, Value: value, Reason: reason}
}

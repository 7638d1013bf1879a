package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig matches every *ConfigError via errors.Is.
	ErrInvalidConfig = errors.New("cache: invalid config")

	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New("cache: no Loader provided")

	// ErrClosed is returned by GetOrLoad after Close.
	ErrClosed = errors.New("cache: closed")
)

// ConfigError describes an Options field rejected by New.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cache: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports ErrInvalidConfig as a match.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

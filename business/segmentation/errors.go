package segmentation

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable means the trained artifacts are not loaded. Callers
// should surface it as a retry-later condition, not a client error.
var ErrModelUnavailable = errors.New("model artifacts not loaded")

// ValidationError rejects a malformed input record before any computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigError marks a broken artifact set: empty centroid table, zero scale
// factor, cluster-name table shorter than K. Fatal at load time; a model that
// fails validation is never installed, so requests can't hit these states.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "model configuration: " + e.Reason
}

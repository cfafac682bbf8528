package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by order number matches no row.
// It is an expected outcome, not a failure, and is never logged as one.
var ErrNotFound = errors.New("order not found")

// ValidationError reports the first rejected field of an order draft:
// either a required field left blank or a choice field outside its
// configured option set. Field is the human label shown to the staff member.
type ValidationError struct {
	Field string
	Msg   string // empty for a missing required field
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ConfigurationError indicates a deployment misconfiguration, e.g. a product
// with a quantity but no catalog column, or a previous order number that
// cannot be parsed under the increment policy. Fatal for the submission.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// ProviderError wraps a failure from an external provider (the payment QR
// API). Surfaced to callers distinctly from row store errors.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

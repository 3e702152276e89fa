// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientCredits = errors.New("insufficient analysis credits")
	ErrTradeNotFound       = errors.New("trade not found")
	ErrDataNotFound        = errors.New("data not found")
	ErrDatabaseError       = errors.New("database error")
	ErrConfigInvalid       = errors.New("invalid configuration")
	ErrTimeout             = errors.New("operation timed out")
	ErrNoLLMClient         = errors.New("no language model client configured")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// DataError represents a data-related error.
type DataError struct {
	DataType string
	ID       string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.ID, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.ID, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, id, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		ID:       id,
		Message:  message,
		Err:      err,
	}
}

// NarrativeError represents an error from the narrative-generation call.
type NarrativeError struct {
	Operation string
	Err       error
}

func (e *NarrativeError) Error() string {
	return fmt.Sprintf("narrative error [%s]: %v", e.Operation, e.Err)
}

func (e *NarrativeError) Unwrap() error {
	return e.Err
}

// NewNarrativeError creates a new NarrativeError.
func NewNarrativeError(operation string, err error) *NarrativeError {
	return &NarrativeError{
		Operation: operation,
		Err:       err,
	}
}

// QuotaError represents a usage-quota violation.
type QuotaError struct {
	UserID    string
	Requested int
	Remaining int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota error [%s]: requested %d, remaining %d", e.UserID, e.Requested, e.Remaining)
}

func (e *QuotaError) Unwrap() error {
	return ErrInsufficientCredits
}

// NewQuotaError creates a new QuotaError.
func NewQuotaError(userID string, requested, remaining int) *QuotaError {
	return &QuotaError{
		UserID:    userID,
		Requested: requested,
		Remaining: remaining,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

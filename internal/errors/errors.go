// Package errors provides centralized error definitions and error handling
// utilities for the Cadence codebase. It defines the planning error taxonomy,
// error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Configuration errors represent invalid planning input that is rejected
// before the engine runs:
//   - ConfigurationError: invalid task input (non-positive duration or
//     capacity, dependency cycle, unknown dependency ID, duplicate ID)
//
// Computation errors represent internal inconsistencies during a
// recomputation:
//   - ComputationError: the engine reached a state it should not be able to
//     reach (for example, a scheduler pass that makes no progress)
//
// Infeasible tasks are deliberately NOT errors: a task that cannot fit within
// capacity is an expected planning outcome and is reported as data in the
// schedule result.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConfigurationError("task list rejected", errors.ErrDependencyCycle).WithTask("deploy")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrDependencyCycle) { ... }
//
//	var cfgErr *errors.ConfigurationError
//	if errors.As(err, &cfgErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for conditions that should be surfaced to the user
	// but do not abort a recomputation.
	SeverityWarning Severity = iota
	// SeverityError is for errors that abort the current recomputation.
	SeverityError
	// SeverityCritical is for errors that indicate a bug in the engine.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Task input sentinel errors
var (
	// ErrTaskNotFound indicates that a task ID could not be resolved.
	ErrTaskNotFound = New("task not found")
	// ErrDuplicateTaskID indicates two tasks share the same identifier.
	ErrDuplicateTaskID = New("duplicate task id")
	// ErrUnknownDependency indicates a task depends on an ID that does not exist.
	ErrUnknownDependency = New("unknown dependency id")
	// ErrDependencyCycle indicates a circular dependency between tasks.
	ErrDependencyCycle = New("dependency cycle detected")
	// ErrInvalidDuration indicates a task has a non-positive estimated duration.
	ErrInvalidDuration = New("estimated duration must be positive")
	// ErrInvalidCapacity indicates the daily capacity is not positive.
	ErrInvalidCapacity = New("daily capacity must be positive")
	// ErrInvalidMode indicates an unrecognized planning mode.
	ErrInvalidMode = New("invalid planning mode")
)

// Engine sentinel errors
var (
	// ErrNoProgress indicates the scheduler completed a full pass without
	// assigning or excluding a task. This should be unreachable on validated
	// input and is treated as an internal inconsistency.
	ErrNoProgress = New("scheduler made no progress")
	// ErrEmptySweep indicates a capacity sweep contains no capacity values.
	ErrEmptySweep = New("capacity sweep is empty")
)

// -----------------------------------------------------------------------------
// Configuration Error
// -----------------------------------------------------------------------------

// ConfigurationError represents invalid planning input. It is detected at the
// task store boundary, before any scheduling happens, and is never silently
// coerced into a runnable plan.
type ConfigurationError struct {
	// Message describes what was wrong with the input.
	Message string
	// TaskID identifies the offending task, when the problem is task-specific.
	TaskID string
	// Err is the underlying sentinel error, if any.
	Err error
}

// NewConfigurationError creates a ConfigurationError wrapping the given error.
func NewConfigurationError(message string, err error) *ConfigurationError {
	return &ConfigurationError{Message: message, Err: err}
}

// WithTask attaches the offending task ID and returns the error for chaining.
func (e *ConfigurationError) WithTask(taskID string) *ConfigurationError {
	e.TaskID = taskID
	return e
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := "configuration: " + e.Message
	if e.TaskID != "" {
		msg = fmt.Sprintf("%s (task %q)", msg, e.TaskID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Severity returns the severity of a configuration error.
func (e *ConfigurationError) Severity() Severity {
	return SeverityError
}

// -----------------------------------------------------------------------------
// Computation Error
// -----------------------------------------------------------------------------

// ComputationError represents an unexpected internal inconsistency during a
// recomputation. It is fatal for that recomputation: callers receive the error
// instead of a partially-built result.
type ComputationError struct {
	// Stage names the pipeline stage that failed ("scheduler", "forecast", ...).
	Stage string
	// Message describes the inconsistency.
	Message string
	// Err is the underlying sentinel error, if any.
	Err error
}

// NewComputationError creates a ComputationError for the given pipeline stage.
func NewComputationError(stage, message string, err error) *ComputationError {
	return &ComputationError{Stage: stage, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	msg := fmt.Sprintf("computation (%s): %s", e.Stage, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ComputationError) Unwrap() error {
	return e.Err
}

// Severity returns the severity of a computation error.
func (e *ComputationError) Severity() Severity {
	return SeverityCritical
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return As(err, &cfgErr)
}

// IsComputation reports whether err is (or wraps) a ComputationError.
func IsComputation(err error) bool {
	var compErr *ComputationError
	return As(err, &compErr)
}

// SeverityOf returns the severity of err, defaulting to SeverityError for
// errors that do not carry their own severity.
func SeverityOf(err error) Severity {
	var cfgErr *ConfigurationError
	if As(err, &cfgErr) {
		return cfgErr.Severity()
	}
	var compErr *ComputationError
	if As(err, &compErr) {
		return compErr.Severity()
	}
	return SeverityError
}

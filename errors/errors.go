// Package errors provides error handling for ghpr.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for operator-facing messages
//   - Marker-based error kinds usable with Is
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Tag with an error kind, keeping the original message
//	return errors.NewConfigurationError("cannot resolve repository from %q", raw)
//
//	// Check errors
//	if errors.Is(err, errors.ErrConfiguration) {
//	    // tell the operator which property to fix
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Mark tags err so that Is(err, reference) reports true while the message of err
// is left untouched.
var Mark = crdb.Mark

// Error kinds surfaced to operators. Both are terminal: the calling operation
// aborts and nothing retries internally.
var (
	// ErrConfiguration indicates the GitHub repository identity could not be derived
	// from the configured properties.
	ErrConfiguration = New("configuration error")

	// ErrProxyResolution indicates a proxy was expected but none could be resolved
	// for the target endpoint.
	ErrProxyResolution = New("proxy resolution failed")
)

// NewConfigurationError creates an error of kind ErrConfiguration with a formatted message
func NewConfigurationError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrConfiguration)
}

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsProxyResolutionError checks if an error is or wraps ErrProxyResolution
func IsProxyResolutionError(err error) bool {
	return err != nil && Is(err, ErrProxyResolution)
}

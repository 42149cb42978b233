package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across ghpr.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Configuration
	FieldKey    = "key"
	FieldValue  = "value"
	FieldSource = "source"
	FieldPath   = "path"

	// Errors
	FieldError = "error"

	// GitHub
	FieldRepository  = "repository"
	FieldPullRequest = "pull_request"
	FieldEndpoint    = "endpoint"
	FieldRemote      = "remote"

	// Network
	FieldProxy  = "proxy"
	FieldScheme = "scheme"
	FieldHost   = "host"
	FieldPort   = "port"
	FieldUser   = "user"
)

// ComponentLogger returns a named logger for a specific component.
//
// Call it when the logger is needed rather than caching it at package init:
// the global logger is a no-op until Initialize runs.
//
// Example:
//
//	log := logger.ComponentLogger("proxy")
//	log.Infow("proxy selected", logger.FieldProxy, d.String())
func ComponentLogger(name string) *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger.Named(name)
}

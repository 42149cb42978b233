package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for the -v CLI flag count.
const (
	VerbosityUser  = 0 // No flags: resolved values, warnings and errors only
	VerbosityInfo  = 1 // -v: + selected proxy, config files read
	VerbosityDebug = 2 // -vv: + pattern matching and fallback decisions
)

// VerbosityToLevel maps verbosity flags (-v, -vv) to zap log levels
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel  (+ informational messages)
//	2+ (-vv)  -> DebugLevel (+ debug messages)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName returns a human-readable name for verbosity level
func LevelName(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "User"
	case VerbosityInfo:
		return "Info (-v)"
	case VerbosityDebug:
		return "Debug (-vv)"
	default:
		if verbosity > VerbosityDebug {
			return "Debug (-vv+)"
		}
		return "Unknown"
	}
}

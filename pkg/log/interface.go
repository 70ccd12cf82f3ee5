// Package log provides the structured logging interface used by polyreg.
//
// The Logger interface is slog-compatible and backend-agnostic. Two backends
// ship with the package:
//
//   - zerolog (console or JSON lines), the default
//   - log/slog JSON, wrapped by ErrFmtHandler so cockroachdb stack traces
//     are emitted as a separate attribute
//
// Example usage:
//
//	logger := log.GetLoggerWithName("polynomial").With(
//	    log.ModelNameKey, "PolynomialRegression",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 10,
//	)
package log

import (
	"context"
)

// Logger is a structured logger with key-value fields.
type Logger interface {
	// Debug logs detailed diagnostics such as per-iteration loss.
	Debug(msg string, fields ...any)

	// Info logs operational milestones.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the caller.
	Warn(msg string, fields ...any)

	// Error logs a failure. If the first field is an error value it is
	// attached under ErrAttrKey together with its stack trace.
	//
	//   logger.Error("Training failed", err, log.OperationKey, log.OperationFit)
	Error(msg string, fields ...any)

	// With returns a logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with slog-compatible values.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. The package-level GetLogger and
// GetLoggerWithName delegate to the installed provider.
type LoggerProvider interface {
	// GetLogger returns the root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level of loggers created afterwards.
	SetLevel(level Level)
}

// splitError separates a leading error value from the remaining fields.
func splitError(fields []any) (error, []any) {
	if len(fields) == 0 {
		return nil, fields
	}
	if err, ok := fields[0].(error); ok {
		return err, fields[1:]
	}
	return nil, fields
}

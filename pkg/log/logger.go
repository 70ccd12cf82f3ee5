package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Format selects the output encoding of the default provider.
type Format string

const (
	// FormatConsole is human-readable zerolog console output.
	FormatConsole Format = "console"
	// FormatJSON is zerolog JSON lines.
	FormatJSON Format = "json"
	// FormatSlog is log/slog JSON lines with stack traces split out by ErrFmtHandler.
	FormatSlog Format = "slog"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewProvider(os.Stderr, LevelInfo, FormatConsole)
)

// SetupLogger installs the package-level provider writing to stderr.
// It also routes pkg/errors warnings through the new provider.
func SetupLogger(level string, format string) error {
	return SetupLoggerWithWriter(os.Stderr, level, format)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(w io.Writer, level string, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	p := NewProvider(w, lvl, f)
	SetProvider(p)

	warnLogger := p.GetLoggerWithName("warnings")
	errors.SetZerologWarnFunc(func(warning error) {
		warnLogger.Warn(warning.Error(), "warning.type", fmt.Sprintf("%T", warning))
	})
	return nil
}

// SetProvider replaces the package-level provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the root logger of the installed provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with ComponentKey=name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// ParseLevel converts "debug", "info", "warn" or "error" into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", level)
	}
}

// ParseFormat converts "console", "json" or "slog" into a Format.
func ParseFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(format)); f {
	case FormatConsole, FormatJSON, FormatSlog:
		return f, nil
	case "":
		return FormatConsole, nil
	default:
		return FormatConsole, errors.NewValidationError("log-format", "must be one of console, json, slog", format)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// Provider is the default LoggerProvider.
type Provider struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewProvider creates a provider writing records at or above level to w.
func NewProvider(w io.Writer, level Level, format Format) *Provider {
	return &Provider{w: w, level: level, format: format}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *Provider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.format {
	case FormatSlog:
		handler := slog.NewJSONHandler(p.w, &slog.HandlerOptions{Level: slog.Level(p.level)})
		return NewSlogLogger(slog.New(WrapByErrFmtHandler(handler)))
	case FormatJSON:
		return NewZerologLogger(zerolog.New(p.w).Level(toZerologLevel(p.level)).With().Timestamp().Logger())
	default:
		cw := zerolog.ConsoleWriter{Out: p.w, TimeFormat: "15:04:05"}
		return NewZerologLogger(zerolog.New(cw).Level(toZerologLevel(p.level)).With().Timestamp().Logger())
	}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *Provider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *Provider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// Level represents logging levels
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Config holds logger configuration
type Config struct {
	Level        Level  `json:"level"`
	Format       string `json:"format"` // "json", "text"
	Output       string `json:"output"` // "stdout", "stderr", file path
	EnableCaller bool   `json:"enable_caller"`
	Component    string `json:"component"`
}

// DefaultConfig returns a text logger on stderr at info level
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: "text",
		Output: "stderr",
	}
}

// Logger wraps slog.Logger with component tagging
type Logger struct {
	*slog.Logger
	config Config
	output io.Writer
}

// New creates a logger from config
func New(config Config) *Logger {
	var output io.Writer
	switch config.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		if file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			output = file
		} else {
			output = os.Stderr
		}
	}
	return NewWithWriter(config, output)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(config Config, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	base := slog.New(handler)
	if config.Component != "" {
		base = base.With("component", config.Component)
	}

	return &Logger{
		Logger: base,
		config: config,
		output: w,
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithWriter(Config{Level: LevelError}, io.Discard)
}

// WithContext creates a new logger with additional attributes
func (l *Logger) WithContext(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
		config: l.config,
		output: l.output,
	}
}

// WithComponent creates a logger tagged with a component name
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithContext("component", component)
}

// Error logs at error level, adding the caller when enabled
func (l *Logger) Error(msg string, args ...any) {
	if l.config.EnableCaller {
		if _, file, line, ok := runtime.Caller(1); ok {
			args = append(args, "caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}
	l.Logger.Error(msg, args...)
}

// Close closes the underlying file, if any
func (l *Logger) Close() error {
	if l.output == os.Stdout || l.output == os.Stderr {
		return nil
	}
	if closer, ok := l.output.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func parseLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

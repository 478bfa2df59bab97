// Package rlog provides standardized logging utilities for rst2x.
package rlog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var defaultLogger *slog.Logger

// Level is the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration.
type Config struct {
	Level     Level
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
	LogFile   string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) error {
	var handler slog.Handler

	output := cfg.Output
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		output = file
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

// InitDev initializes logging for interactive use (debug level, text format).
func InitDev() {
	_ = Init(Config{Level: LevelDebug, Format: "text", Output: os.Stderr, AddSource: true})
}

// InitProd initializes logging for build/watch runs (info level, json,
// written under logDir).
func InitProd(logDir string) error {
	return Init(Config{
		Level:   LevelInfo,
		Format:  "json",
		LogFile: filepath.Join(logDir, "rst2x.log"),
	})
}

func toSlogLevel(level Level) slog.Level {
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

func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Error(msg, args...)
	}
}

func With(args ...any) *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger.With(args...)
	}
	return slog.Default().With(args...)
}

// rst2x-specific helpers, mirroring the per-phase log calls of a
// multi-stage compiler pipeline but scoped to lex/parse/resolve, plus
// directives, includes, diagnostics, batch builds and watch events.

func LogLex(file string, tokenCount int) {
	Debug("lexing complete", "file", file, "tokens", tokenCount)
}

func LogParse(file string, nodeCount int) {
	Debug("parsing complete", "file", file, "nodes", nodeCount)
}

func LogResolve(file string, subs, refs int) {
	Debug("resolver complete", "file", file, "substitutions", subs, "refs", refs)
}

func LogDirective(file, name string) {
	Debug("directive", "file", file, "name", name)
}

func LogInclude(file, path string) {
	Debug("include", "file", file, "path", path)
}

func LogDiagnostic(file string, line, col int, class, msg string) {
	switch class {
	case "Error":
		Error("diagnostic", "file", file, "line", line, "col", col, "message", msg)
	case "Warning":
		Warn("diagnostic", "file", file, "line", line, "col", col, "message", msg)
	default:
		Info("diagnostic", "file", file, "line", line, "col", col, "message", msg)
	}
}

func LogBuildStart(files int) {
	Info("build starting", "files", files)
}

func LogBuildComplete(success bool, duration string) {
	if success {
		Info("build complete", "duration", duration)
	} else {
		Error("build failed", "duration", duration)
	}
}

func LogWatchEvent(path, op string) {
	Info("watch event", "path", path, "op", op)
}

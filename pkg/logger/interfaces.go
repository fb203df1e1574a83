// Package logger provides a narrow structured-logging interface over
// go.uber.org/zap, kept separate so the rest of the module never imports
// zap directly.
package logger

import "go.uber.org/zap"

// Logger is the structured logging interface consumed by the factory core.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	With(fields ...Field) Logger
	Named(name string) Logger

	Sync() error
}

// Field is a structured log field, indirecting over zap.Field so call sites
// never need to import zap.
type Field interface {
	ZapField() zap.Field
}

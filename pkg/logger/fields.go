package logger

import (
	"time"

	"go.uber.org/zap"
)

type field struct {
	zf zap.Field
}

func (f field) ZapField() zap.Field { return f.zf }

// String creates a string field.
func String(key, value string) Field { return field{zap.String(key, value)} }

// Int creates an int field.
func Int(key string, value int) Field { return field{zap.Int(key, value)} }

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field { return field{zap.Duration(key, value)} }

// Error creates an error field under the conventional "error" key.
func Error(err error) Field { return field{zap.Error(err)} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return field{zap.Bool(key, value)} }

// Any creates a field from an arbitrary value via reflection.
func Any(key string, value interface{}) Field { return field{zap.Any(key, value)} }

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = f.ZapField()
	}
	return out
}

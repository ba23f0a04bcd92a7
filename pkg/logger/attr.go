package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a field path under "field".
func Field(path string) slog.Attr {
	return slog.String("field", path)
}

// Reason records a validation failure message under "reason".
func Reason(msg string) slog.Attr {
	return slog.String("reason", msg)
}

// Code records a failure category under "code".
func Code(code string) slog.Attr {
	return slog.String("code", code)
}

// Depth records a nesting depth under "depth".
func Depth(d int) slog.Attr {
	return slog.Int("depth", d)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// RequestID records the request identifier under "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

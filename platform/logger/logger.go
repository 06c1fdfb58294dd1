// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New creates a new logger based on environment
func New(env string) *Logger {
	return NewWriter(os.Stdout, env)
}

// NewWriter creates a logger that writes to w. Development environments get
// human-readable text at debug level, everything else JSON at info level.
func NewWriter(w io.Writer, env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewFile creates a logger that appends timestamped text lines to path.
// The parent directory is created if missing. Call Close when done.
func NewFile(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{
		Logger: slog.New(handler),
		closer: f,
	}, nil
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// WithContext returns a logger with context values extracted.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// NumberValidated logs the outcome of a single phone number check.
func (l *Logger) NumberValidated(input string, success, valid bool, errorType string) {
	if success {
		l.Debug("number_validated",
			slog.String("input", input),
			slog.Bool("valid", valid),
		)
		return
	}
	l.Debug("number_rejected",
		slog.String("input", input),
		slog.String("error_type", errorType),
	)
}

// MessageSent logs a message written to the message log.
func (l *Logger) MessageSent(kind, chatID, detail string) {
	l.Info(fmt.Sprintf("%s sent to %s: %s", kind, chatID, detail),
		slog.String("event", "message_sent"),
		slog.String("kind", kind),
		slog.String("chat_id", chatID),
	)
}

// MessageFailed logs a message that could not be written.
func (l *Logger) MessageFailed(kind, chatID string, err error) {
	l.Error(fmt.Sprintf("failed to send %s to %s: %v", kind, chatID, err),
		slog.String("event", "message_failed"),
		slog.String("kind", kind),
		slog.String("chat_id", chatID),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

// QuotaExceeded logs guest quota rejections.
func (l *Logger) QuotaExceeded(clientIP string, used, limit int) {
	l.Warn("quota_exceeded",
		slog.String("client_ip", clientIP),
		slog.Int("used", used),
		slog.Int("limit", limit),
	)
}

// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// WorkflowIDKey is the context key for a certification workflow run ID
	WorkflowIDKey contextKey = "workflow_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and workflow_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = newLogger.WithRequestID(requestID)
	}

	if workflowID, ok := ctx.Value(WorkflowIDKey).(string); ok && workflowID != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("workflow_id", workflowID)),
		}
	}

	return newLogger
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// WithOrderID returns a logger with the provider order ID attached.
func (l *Logger) WithOrderID(orderID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("order_id", orderID)),
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

// ProviderFallback logs that a provider-facing step failed and the caller is
// being served synthetic data. This marker is the only way a fallback outcome
// is distinguishable from a live one.
func (l *Logger) ProviderFallback(step string, err error) {
	l.Warn("using fallback/mock data",
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

// ProviderCall logs the outcome of a live provider call.
func (l *Logger) ProviderCall(step, endpoint string, status int, latencyMs float64) {
	l.Info("provider_call",
		slog.String("step", step),
		slog.String("endpoint", endpoint),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

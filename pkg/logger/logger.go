package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		// Use JSON handler for automation (structured)
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		// Use text handler for interactive terminals (more readable)
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("user_id", userID)),
	}
}

// WithEventID adds event ID to logger context
func (l *Logger) WithEventID(eventID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("event_id", eventID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// API logging methods

// LogAPIRequest logs an outgoing API request
func (l *Logger) LogAPIRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	l.Logger.DebugContext(ctx,
		"API Request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	)
}

// LogAPIError logs a failed API request
func (l *Logger) LogAPIError(ctx context.Context, method, path string, err error) {
	l.Logger.ErrorContext(ctx,
		"API Error",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// Business logic logging methods

// LogBookingSubmitted logs when a booking request is sent
func (l *Logger) LogBookingSubmitted(ctx context.Context, eventID string, quantity int) {
	l.Logger.InfoContext(ctx,
		"Booking Submitted",
		slog.String("event_id", eventID),
		slog.Int("quantity", quantity),
	)
}

// LogBookingConfirmed logs when a booking is confirmed by the backend
func (l *Logger) LogBookingConfirmed(ctx context.Context, bookingID, eventID string) {
	l.Logger.InfoContext(ctx,
		"Booking Confirmed",
		slog.String("booking_id", bookingID),
		slog.String("event_id", eventID),
	)
}

// LogPaymentCaptured logs when the checkout collaborator reports success
func (l *Logger) LogPaymentCaptured(ctx context.Context, paymentID string, amount int64) {
	l.Logger.InfoContext(ctx,
		"Payment Captured",
		slog.String("payment_id", paymentID),
		slog.Int64("amount", amount),
	)
}

// LogCatalogRefreshed logs a catalog re-fetch
func (l *Logger) LogCatalogRefreshed(ctx context.Context, count int) {
	l.Logger.DebugContext(ctx,
		"Catalog Refreshed",
		slog.Int("events", count),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, userID, role string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("role", role),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
	)
}

// LogSessionExpired logs a session invalidated by the backend
func (l *Logger) LogSessionExpired(ctx context.Context) {
	l.Logger.WarnContext(ctx, "Session Expired")
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

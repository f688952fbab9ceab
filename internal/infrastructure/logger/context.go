package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// UserIDKey is the context key for the chat user id
	UserIDKey contextKey = "user_id"
	// ConversationIDKey is the context key for the checkout conversation id
	ConversationIDKey contextKey = "conversation_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if
// not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithUserID adds the chat user id to context and returns an enriched logger
func WithUserID(ctx context.Context, logger *zap.Logger, userID int64) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	enrichedLogger := logger.With(zap.Int64("user_id", userID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// WithConversationID adds the conversation id to context and returns an
// enriched logger
func WithConversationID(ctx context.Context, logger *zap.Logger, conversationID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, ConversationIDKey, conversationID)
	enrichedLogger := logger.With(zap.String("conversation_id", conversationID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// GetUserID retrieves the chat user id from context
func GetUserID(ctx context.Context) int64 {
	if userID, ok := ctx.Value(UserIDKey).(int64); ok {
		return userID
	}
	return 0
}

// GetConversationID retrieves the conversation id from context
func GetConversationID(ctx context.Context) string {
	if conversationID, ok := ctx.Value(ConversationIDKey).(string); ok {
		return conversationID
	}
	return ""
}

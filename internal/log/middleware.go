package log

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextLogger   = "logger"
	HeaderRequestID = "X-Request-ID"
)

// GinMiddleware registra cada requisição e deixa um logger com request_id no contexto do gin.
func GinMiddleware(base *Logger) gin.HandlerFunc {
	httpLogger := base.WithComponent(ComponentHTTP)

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		reqLogger := httpLogger.With(FieldRequestID, requestID)
		c.Set(ContextLogger, reqLogger)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		reqLogger.Logger.Log(c.Request.Context(), level, "HTTP request completed",
			FieldComponent, ComponentHTTP,
			FieldMethod, c.Request.Method,
			FieldPath, c.FullPath(),
			FieldStatusCode, status,
			FieldDuration, time.Since(start).Milliseconds(),
			FieldClientIP, c.ClientIP(),
		)
	}
}

// FromGin devolve o logger da requisição ou o fallback.
func FromGin(c *gin.Context, fallback *Logger) *Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(*Logger); ok {
			return l
		}
	}
	return fallback
}

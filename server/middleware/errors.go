package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tripserver/server/errors"
)

// Глобальный сборщик метрик ошибок
var globalErrorMetrics *apperrors.ErrorMetricsCollector

// InitErrorMetrics инициализирует глобальный сборщик метрик ошибок
func InitErrorMetrics() {
	globalErrorMetrics = apperrors.NewErrorMetricsCollector()
}

// GetErrorMetrics возвращает глобальный сборщик метрик ошибок
func GetErrorMetrics() *apperrors.ErrorMetricsCollector {
	if globalErrorMetrics == nil {
		globalErrorMetrics = apperrors.NewErrorMetricsCollector()
	}
	return globalErrorMetrics
}

// HTTPError интерфейс для ошибок с HTTP статусом и сообщением
// Используется для избежания циклических зависимостей
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleGinError обрабатывает ошибку и возвращает JSON ответ через Gin.
// Поддерживает HTTPError для правильной обработки статус кодов и сообщений
func HandleGinError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)
	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = c.Request.URL.Path
	}

	var statusCode int
	var message string
	var appErr *apperrors.AppError

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
		message = httpErr.UserMessage()

		if errors.As(err, &appErr) {
			GetErrorMetrics().RecordError(appErr, endpoint)
		}

		slog.Error("HTTP error",
			"error", httpErr.Unwrap(),
			"user_message", httpErr.UserMessage(),
			"context", httpErr.GetContext(),
			"status_code", statusCode,
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else {
		statusCode = http.StatusInternalServerError
		message = "Внутренняя ошибка сервера"

		appErr = apperrors.NewInternalError("внутренняя ошибка сервера", err)
		GetErrorMetrics().RecordError(appErr, endpoint)

		slog.Error("HTTP error",
			"error", err,
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(statusCode, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}

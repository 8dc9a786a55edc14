package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"tripserver/server/middleware"
)

// ErrorResponse структура ответа об ошибке (для Swagger документации)
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"Категория не найдена"`
}

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError отправляет JSON ошибку через Gin context и логирует её
func SendJSONError(c *gin.Context, statusCode int, message string) {
	reqID := middleware.GetRequestIDFromGin(c)

	slog.Error("Gin HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}

// SendAppError отправляет AppError-совместимую ошибку, записывая метрики
func SendAppError(c *gin.Context, err error) {
	middleware.HandleGinError(c, err)
}

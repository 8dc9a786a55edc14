package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripserver/database"
	apperrors "tripserver/server/errors"
	"tripserver/server/middleware"
)

// AvailabilityReporter провайдер, умеющий сообщать о своей доступности
type AvailabilityReporter interface {
	GetName() string
	IsAvailable() bool
}

// SystemHandler обработчик health-проверки и служебных операций
type SystemHandler struct {
	db        *database.DB
	providers []AvailabilityReporter
	startedAt time.Time
}

// NewSystemHandler создает новый системный обработчик
func NewSystemHandler(db *database.DB, providers []AvailabilityReporter) *SystemHandler {
	return &SystemHandler{
		db:        db,
		providers: providers,
		startedAt: time.Now(),
	}
}

// HandleHealth обработчик health-проверки
// @Summary Проверка работоспособности
// @Description Возвращает состояние базы, провайдеров и сводку по ошибкам
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Состояние сервера"
// @Router /health [get]
func (h *SystemHandler) HandleHealth(c *gin.Context) {
	status := "ok"

	categoryCount, err := h.db.CountCategories()
	if err != nil {
		status = "degraded"
	}
	placeCount, err := h.db.CountPlaces()
	if err != nil {
		status = "degraded"
	}

	providers := make([]gin.H, 0, len(h.providers))
	for _, provider := range h.providers {
		providers = append(providers, gin.H{
			"name":      provider.GetName(),
			"available": provider.IsAvailable(),
		})
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"status":     status,
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
		"categories": categoryCount,
		"places":     placeCount,
		"providers":  providers,
		"errors":     middleware.GetErrorMetrics().Summary(),
	})
}

// HandleSeed обработчик начального заполнения базы
// @Summary Заполнить базу начальными данными
// @Description Создает стандартные категории и демонстрационные места, если их еще нет. Идемпотентно
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Итог заполнения"
// @Failure 500 {object} middleware.ErrorResponse "Внутренняя ошибка сервера"
// @Router /seed [post]
func (h *SystemHandler) HandleSeed(c *gin.Context) {
	if err := h.db.EnsureSeedCategories(); err != nil {
		SendAppError(c, apperrors.WrapError(err, "не удалось создать категории"))
		return
	}
	if err := h.db.EnsureSeedPlaces(); err != nil {
		SendAppError(c, apperrors.WrapError(err, "не удалось создать места"))
		return
	}

	categories, _ := h.db.CountCategories()
	places, _ := h.db.CountPlaces()

	SendJSONResponse(c, http.StatusOK, gin.H{
		"message":    "База данных заполнена",
		"categories": categories,
		"places":     places,
	})
}

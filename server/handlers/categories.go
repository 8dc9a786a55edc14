package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripserver/database"
	apperrors "tripserver/server/errors"
)

// CategoryHandler обработчик категорий мест
type CategoryHandler struct {
	db *database.DB
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(db *database.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

// HandleGetCategories обработчик получения списка категорий
// @Summary Получить список категорий
// @Description Возвращает все категории мест в порядке добавления
// @Tags categories
// @Produce json
// @Success 200 {array} database.Category "Список категорий"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /categories [get]
func (h *CategoryHandler) HandleGetCategories(c *gin.Context) {
	categories, err := h.db.GetCategories()
	if err != nil {
		SendAppError(c, apperrors.NewInternalError("не удалось получить категории", err))
		return
	}

	SendJSONResponse(c, http.StatusOK, categories)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripserver/server/services"
)

// CityInfoHandler обработчик справок о городах
type CityInfoHandler struct {
	cityInfo *services.CityInfoService
}

// NewCityInfoHandler создает новый обработчик справок о городах
func NewCityInfoHandler(cityInfo *services.CityInfoService) *CityInfoHandler {
	return &CityInfoHandler{cityInfo: cityInfo}
}

// HandleGetCityInfo обработчик получения справки о городе
// @Summary Получить справку о городе
// @Description Возвращает первый содержательный абзац статьи Википедии о городе
// @Tags city-info
// @Produce json
// @Param city query string true "Название города"
// @Success 200 {object} services.CityInfo "Справка о городе"
// @Failure 400 {object} middleware.ErrorResponse "Город не указан"
// @Failure 404 {object} middleware.ErrorResponse "Статья не найдена"
// @Failure 502 {object} middleware.ErrorResponse "Источник недоступен"
// @Router /city-info [get]
func (h *CityInfoHandler) HandleGetCityInfo(c *gin.Context) {
	info, err := h.cityInfo.Fetch(c.Request.Context(), c.Query("city"))
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, info)
}

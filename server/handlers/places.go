package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripserver/server/services"
)

// PlacesHandler обработчик сохраненных мест и карточек места
type PlacesHandler struct {
	discovery *services.DiscoveryService
}

// NewPlacesHandler создает новый обработчик мест
func NewPlacesHandler(discovery *services.DiscoveryService) *PlacesHandler {
	return &PlacesHandler{discovery: discovery}
}

// HandleGetCategoryPlaces обработчик получения мест категории
// @Summary Получить места категории
// @Description Возвращает сохраненные места категории. Токен категории — числовой ID или slug без учета регистра
// @Tags places
// @Produce json
// @Param token path string true "ID или slug категории"
// @Success 200 {array} types.PlaceRecord "Места категории"
// @Failure 404 {object} middleware.ErrorResponse "Категория не найдена"
// @Failure 500 {object} middleware.ErrorResponse "Внутренняя ошибка сервера"
// @Router /categories/{token}/places [get]
func (h *PlacesHandler) HandleGetCategoryPlaces(c *gin.Context) {
	category, err := h.discovery.ResolveCategory(c.Param("token"))
	if err != nil {
		SendAppError(c, err)
		return
	}

	records, err := h.discovery.LocalPlaces(category)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, records)
}

// HandleGetPlaceDetail обработчик карточки места
// @Summary Получить карточку места
// @Description Числовой ID ищется в локальной базе, идентификаторы вида osm_node_123 и ovp_way_456 запрашиваются у провайдеров
// @Tags places
// @Produce json
// @Param id path string true "Идентификатор места"
// @Success 200 {object} types.PlaceRecord "Карточка места"
// @Failure 400 {object} middleware.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} middleware.ErrorResponse "Место не найдено"
// @Failure 502 {object} middleware.ErrorResponse "Внешний провайдер недоступен"
// @Router /places/{id} [get]
func (h *PlacesHandler) HandleGetPlaceDetail(c *gin.Context) {
	record, err := h.discovery.PlaceDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, record)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripserver/server/services"
)

// DiscoveryHandler обработчик поиска мест через внешние геопровайдеры
type DiscoveryHandler struct {
	discovery *services.DiscoveryService
}

// NewDiscoveryHandler создает новый обработчик поиска мест
func NewDiscoveryHandler(discovery *services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discovery}
}

// HandlePlacesByCity обработчик поиска мест по городу
// @Summary Найти места категории в городе
// @Description Ищет места через первичный провайдер; при недоборе результатов подключается поиск по квадрату вокруг центра города. Пустой список — корректный ответ
// @Tags discovery
// @Produce json
// @Param city query string true "Название города"
// @Param slug query string true "ID или slug категории (без учета регистра)"
// @Param radius_km query number false "Радиус добора, км" default(8)
// @Success 200 {array} types.PlaceRecord "Найденные места"
// @Failure 400 {object} middleware.ErrorResponse "Некорректные параметры"
// @Failure 404 {object} middleware.ErrorResponse "Категория не найдена"
// @Router /places-by-city [get]
func (h *DiscoveryHandler) HandlePlacesByCity(c *gin.Context) {
	city := c.Query("city")
	slug := c.Query("slug")
	radiusKm := parseFloatParam(c, "radius_km", 0)

	records, err := h.discovery.DiscoverByCity(c.Request.Context(), city, slug, radiusKm)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, records)
}

// HandlePlacesNearby обработчик поиска мест вокруг координаты
// @Summary Найти места категории рядом с координатой
// @Description Ищет объекты категории в квадрате вокруг точки через bbox-провайдер
// @Tags discovery
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param slug query string true "ID или slug категории (без учета регистра)"
// @Param radius_km query number false "Радиус поиска, км" default(5)
// @Success 200 {array} types.PlaceRecord "Найденные места"
// @Failure 400 {object} middleware.ErrorResponse "Некорректные координаты"
// @Failure 404 {object} middleware.ErrorResponse "Категория не найдена"
// @Router /places-nearby [get]
func (h *DiscoveryHandler) HandlePlacesNearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		SendJSONError(c, http.StatusBadRequest, "Параметры lat и lon обязательны и должны быть числами")
		return
	}

	slug := c.Query("slug")
	radiusKm := parseFloatParam(c, "radius_km", 0)

	records, err := h.discovery.DiscoverNearby(c.Request.Context(), lat, lon, slug, radiusKm)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, records)
}

// fetchDataRequest тело запроса пакетной загрузки
type fetchDataRequest struct {
	City string `json:"city"`
}

// HandleFetchData обработчик пакетной загрузки мест в локальную базу
// @Summary Загрузить места города в локальную базу
// @Description Опрашивает провайдеров по всем категориям и сохраняет новые места. Дубликаты по имени в пределах категории пропускаются
// @Tags discovery
// @Accept json
// @Produce json
// @Param request body fetchDataRequest true "Город для загрузки"
// @Success 200 {object} services.FetchResult "Итог загрузки"
// @Failure 400 {object} middleware.ErrorResponse "Город не указан"
// @Router /fetch-data [post]
func (h *DiscoveryHandler) HandleFetchData(c *gin.Context) {
	var req fetchDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.City = c.Query("city")
	}
	if req.City == "" {
		req.City = c.Query("city")
	}

	result, err := h.discovery.FetchAndStore(c.Request.Context(), req.City)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}

// parseFloatParam парсит числовой query-параметр, возвращая дефолт
// при отсутствии или мусоре
func parseFloatParam(c *gin.Context, name string, defaultValue float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

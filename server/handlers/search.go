package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripserver/server/services"
)

// SearchHandler обработчик локального поиска по сохраненным местам
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler создает новый обработчик поиска
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// HandleSearch обработчик поиска мест
// @Summary Поиск по сохраненным местам
// @Description Ищет места, в имени или описании которых встречаются все слова запроса (со стеммингом: "restaurants" находит "restaurant")
// @Tags search
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} services.SearchResult "Результаты поиска"
// @Failure 400 {object} middleware.ErrorResponse "Пустой запрос"
// @Router /search [get]
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	result, err := h.search.Search(c.Query("q"))
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}

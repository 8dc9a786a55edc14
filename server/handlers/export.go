package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripserver/server/services"
)

// ExportHandler обработчик выгрузки мест в Excel
type ExportHandler struct {
	export    *services.ExportService
	discovery *services.DiscoveryService
}

// NewExportHandler создает новый обработчик экспорта
func NewExportHandler(export *services.ExportService, discovery *services.DiscoveryService) *ExportHandler {
	return &ExportHandler{export: export, discovery: discovery}
}

// HandleExportPlaces обработчик выгрузки мест
// @Summary Выгрузить места в Excel
// @Description Возвращает XLSX файл с сохраненными местами. Без токена выгружаются все категории
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param token query string false "ID или slug категории"
// @Success 200 {file} file "XLSX файл"
// @Failure 404 {object} middleware.ErrorResponse "Категория не найдена"
// @Router /places/export [get]
func (h *ExportHandler) HandleExportPlaces(c *gin.Context) {
	data, filename, err := h.export.ExportPlaces(h.discovery, c.Query("token"))
	if err != nil {
		SendAppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tripserver/database"
	apperrors "tripserver/server/errors"
)

// ExportService выгрузка сохраненных мест в Excel
type ExportService struct {
	db *database.DB
}

// NewExportService создает новый сервис экспорта
func NewExportService(db *database.DB) *ExportService {
	return &ExportService{db: db}
}

// ExportPlaces выгружает места в XLSX. Пустой токен — все категории,
// иначе токен разрешается как ID или slug категории.
func (s *ExportService) ExportPlaces(discovery *DiscoveryService, token string) ([]byte, string, error) {
	var places []database.Place
	var err error
	filename := "places.xlsx"

	if token == "" {
		places, err = s.db.GetAllPlaces()
	} else {
		category, resolveErr := discovery.ResolveCategory(token)
		if resolveErr != nil {
			return nil, "", resolveErr
		}
		places, err = s.db.GetPlacesByCategory(category.ID)
		filename = fmt.Sprintf("places_%s.xlsx", category.Slug)
	}
	if err != nil {
		return nil, "", apperrors.NewInternalError("не удалось получить места", err)
	}

	data, err := buildWorkbook(places)
	if err != nil {
		return nil, "", apperrors.NewInternalError("не удалось сформировать файл", err)
	}
	return data, filename, nil
}

// buildWorkbook собирает XLSX книгу с одним листом мест
func buildWorkbook(places []database.Place) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Places"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	// Стиль заголовков
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{
		"ID", "Category", "Name", "Description", "Location",
		"Phone", "Opening Hours", "Price", "Latitude", "Longitude", "Map Link",
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, place := range places {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), place.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), place.CategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), place.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), place.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), place.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), place.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), place.OpeningHours)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), place.PriceFee)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), place.Latitude)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), place.Longitude)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), place.MapLink)
	}

	// Автоширина колонок
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

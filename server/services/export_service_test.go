package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"tripserver/database"
)

func TestExportPlaces(t *testing.T) {
	db := seededTestDB(t)
	hotels, _ := db.GetCategoryBySlug("hotels")
	restaurants, _ := db.GetCategoryBySlug("restaurants")

	for _, p := range []database.Place{
		{CategoryID: hotels.ID, Name: "Harbor Hotel", Location: "1 Pier Rd"},
		{CategoryID: restaurants.ID, Name: "Quick Bites"},
	} {
		if _, err := db.InsertPlace(p); err != nil {
			t.Fatalf("InsertPlace: %v", err)
		}
	}

	discovery := NewDiscoveryService(db, &fakeKeyword{}, &fakeBBox{}, testDiscoveryConfig())
	s := NewExportService(db)

	data, filename, err := s.ExportPlaces(discovery, "")
	if err != nil {
		t.Fatalf("ExportPlaces: %v", err)
	}
	if filename != "places.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("выгрузка не читается как XLSX: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Places")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Заголовок + два места
	if len(rows) != 3 {
		t.Fatalf("в листе %d строк, ожидается 3", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Name" {
		t.Errorf("заголовки = %v", rows[0])
	}

	// Выгрузка одной категории по slug
	data, filename, err = s.ExportPlaces(discovery, "hotels")
	if err != nil {
		t.Fatalf("ExportPlaces(hotels): %v", err)
	}
	if filename != "places_hotels.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	f2, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("выгрузка категории не читается: %v", err)
	}
	defer f2.Close()
	rows, _ = f2.GetRows("Places")
	if len(rows) != 2 {
		t.Errorf("в листе %d строк, ожидается 2", len(rows))
	}

	// Неизвестная категория
	if _, _, err := s.ExportPlaces(discovery, "submarines"); statusOf(t, err) != 404 {
		t.Error("неизвестная категория должна давать 404")
	}
}

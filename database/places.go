package database

import (
	"database/sql"
	"fmt"
)

// Place локально сохраненное место. В отличие от записей агрегатора,
// имеет числовой первичный ключ и живет в SQLite.
type Place struct {
	ID           int     `json:"id"`
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PriceFee     string  `json:"price_fee"`
	CrowdLevel   string  `json:"crowd_level"`
	Location     string  `json:"location"`
	Phone        string  `json:"phone"`
	MapLink      string  `json:"map_link"`
	OpeningHours string  `json:"opening_hours"`
	ImageURL     string  `json:"image_url"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

const placeColumns = `p.id, p.category_id, c.name, p.name, COALESCE(p.description, ''),
	COALESCE(p.price_fee, ''), COALESCE(p.crowd_level, ''), COALESCE(p.location, ''),
	COALESCE(p.phone, ''), COALESCE(p.map_link, ''), COALESCE(p.opening_hours, ''),
	COALESCE(p.image_url, ''), COALESCE(p.latitude, 0), COALESCE(p.longitude, 0)`

// scanPlace читает одну строку выборки мест.
func scanPlace(scanner interface{ Scan(...interface{}) error }) (Place, error) {
	var p Place
	err := scanner.Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &p.Description,
		&p.PriceFee, &p.CrowdLevel, &p.Location, &p.Phone, &p.MapLink,
		&p.OpeningHours, &p.ImageURL, &p.Latitude, &p.Longitude)
	return p, err
}

// GetPlacesByCategory возвращает все места категории.
func (db *DB) GetPlacesByCategory(categoryID int) ([]Place, error) {
	rows, err := db.conn.Query(fmt.Sprintf(
		`SELECT %s FROM places p JOIN categories c ON c.id = p.category_id WHERE p.category_id = ? ORDER BY p.id`,
		placeColumns), categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := make([]Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

// GetAllPlaces возвращает все сохраненные места.
func (db *DB) GetAllPlaces() ([]Place, error) {
	rows, err := db.conn.Query(fmt.Sprintf(
		`SELECT %s FROM places p JOIN categories c ON c.id = p.category_id ORDER BY p.id`,
		placeColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := make([]Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

// GetPlaceByID возвращает место по числовому идентификатору
// или nil, если такого места нет.
func (db *DB) GetPlaceByID(id int) (*Place, error) {
	row := db.conn.QueryRow(fmt.Sprintf(
		`SELECT %s FROM places p JOIN categories c ON c.id = p.category_id WHERE p.id = ?`,
		placeColumns), id)

	p, err := scanPlace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place by id: %w", err)
	}
	return &p, nil
}

// PlaceExists проверяет наличие места с таким именем в категории.
// Используется путем дозаписи из внешних провайдеров, чтобы не плодить
// дубликаты при повторных выборках.
func (db *DB) PlaceExists(name string, categoryID int) (bool, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM places WHERE name = ? AND category_id = ?`, name, categoryID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check place existence: %w", err)
	}
	return count > 0, nil
}

// InsertPlace добавляет место и возвращает его идентификатор.
func (db *DB) InsertPlace(p Place) (int, error) {
	res, err := db.conn.Exec(
		`INSERT INTO places (category_id, name, description, price_fee, crowd_level, location,
			phone, map_link, opening_hours, image_url, latitude, longitude)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.Name, p.Description, p.PriceFee, p.CrowdLevel, p.Location,
		p.Phone, p.MapLink, p.OpeningHours, p.ImageURL, p.Latitude, p.Longitude)
	if err != nil {
		return 0, fmt.Errorf("failed to insert place: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get place id: %w", err)
	}
	return int(id), nil
}

// CountPlaces возвращает количество сохраненных мест.
func (db *DB) CountPlaces() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return count, nil
}

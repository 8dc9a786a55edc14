package database

import (
	"database/sql"
	"fmt"
)

// Category категория мест (ресторан, отель, автобусы и т.д.).
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

// GetCategories возвращает все категории в порядке добавления.
func (db *DB) GetCategories() ([]Category, error) {
	rows, err := db.conn.Query(`SELECT id, name, slug, COALESCE(icon, '') FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategoryByID возвращает категорию по числовому идентификатору
// или nil, если такой категории нет.
func (db *DB) GetCategoryByID(id int) (*Category, error) {
	var c Category
	err := db.conn.QueryRow(
		`SELECT id, name, slug, COALESCE(icon, '') FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Icon)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &c, nil
}

// GetCategoryBySlug возвращает категорию по slug (точное совпадение)
// или nil, если такой категории нет.
func (db *DB) GetCategoryBySlug(slug string) (*Category, error) {
	var c Category
	err := db.conn.QueryRow(
		`SELECT id, name, slug, COALESCE(icon, '') FROM categories WHERE slug = ?`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Icon)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return &c, nil
}

// InsertCategory добавляет категорию и возвращает ее идентификатор.
func (db *DB) InsertCategory(name, slug, icon string) (int, error) {
	res, err := db.conn.Exec(
		`INSERT INTO categories (name, slug, icon) VALUES (?, ?, ?)`, name, slug, icon,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category id: %w", err)
	}
	return int(id), nil
}

// CountCategories возвращает количество категорий.
func (db *DB) CountCategories() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация connection pooling для SQLite подключения.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB обертка для работы с базой данных трип-планировщика
// (категории, места, пользователи).
type DB struct {
	conn *sql.DB
}

// NewDB создает новое подключение с настройками по умолчанию.
func NewDB(dbPath string) (*DB, error) {
	return NewDBWithConfig(dbPath, DBConfig{})
}

// NewDBWithConfig создает новое подключение к базе данных с конфигурацией.
func NewDBWithConfig(dbPath string, config DBConfig) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка connection pooling
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(25)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(5)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	// Проверяем подключение
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Включаем поддержку FOREIGN KEY constraints в SQLite
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close закрывает подключение к базе данных.
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetConnection возвращает указатель на sql.DB для прямого доступа.
func (db *DB) GetConnection() *sql.DB {
	return db.conn
}

// initSchema создает таблицы, если их еще нет. Идемпотентно.
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		icon TEXT
	);

	CREATE TABLE IF NOT EXISTS places (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		price_fee TEXT,
		crowd_level TEXT,
		location TEXT,
		phone TEXT,
		map_link TEXT,
		opening_hours TEXT,
		image_url TEXT,
		latitude REAL DEFAULT 0,
		longitude REAL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	);

	CREATE INDEX IF NOT EXISTS idx_places_category ON places(category_id);
	CREATE INDEX IF NOT EXISTS idx_places_name ON places(name);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		password_hash TEXT NOT NULL,
		avatar_url TEXT,
		upi_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("✓ Схема базы данных инициализирована")
	return nil
}

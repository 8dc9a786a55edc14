package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User зарегистрированный пользователь. Хэш пароля не сериализуется.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AvatarURL    string `json:"avatar_url"`
	UpiID        string `json:"upi_id"`
	PasswordHash string `json:"-"`
}

// CreateUser регистрирует пользователя, хэшируя пароль через bcrypt.
func (db *DB) CreateUser(name, email, phone, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := db.conn.Exec(
		`INSERT INTO users (name, email, phone, password_hash) VALUES (?, ?, ?, ?)`,
		name, email, phone, string(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	return &User{ID: int(id), Name: name, Email: email, Phone: phone}, nil
}

// GetUserByEmail возвращает пользователя по email или nil, если его нет.
func (db *DB) GetUserByEmail(email string) (*User, error) {
	var u User
	err := db.conn.QueryRow(
		`SELECT id, COALESCE(name, ''), email, COALESCE(phone, ''),
			COALESCE(avatar_url, ''), COALESCE(upi_id, ''), password_hash
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.UpiID, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// GetUserByID возвращает пользователя по идентификатору или nil, если его нет.
func (db *DB) GetUserByID(id int) (*User, error) {
	var u User
	err := db.conn.QueryRow(
		`SELECT id, COALESCE(name, ''), email, COALESCE(phone, ''),
			COALESCE(avatar_url, ''), COALESCE(upi_id, ''), password_hash
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.UpiID, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

// CheckPassword сравнивает пароль с сохраненным bcrypt хэшем.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateUserProfile обновляет изменяемые поля профиля. Пустые значения
// не затирают существующие.
func (db *DB) UpdateUserProfile(id int, name, phone, avatarURL, upiID string) (*User, error) {
	_, err := db.conn.Exec(
		`UPDATE users SET
			name = CASE WHEN ? != '' THEN ? ELSE name END,
			phone = CASE WHEN ? != '' THEN ? ELSE phone END,
			avatar_url = CASE WHEN ? != '' THEN ? ELSE avatar_url END,
			upi_id = CASE WHEN ? != '' THEN ? ELSE upi_id END
		 WHERE id = ?`,
		name, name, phone, phone, avatarURL, avatarURL, upiID, upiID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return db.GetUserByID(id)
}

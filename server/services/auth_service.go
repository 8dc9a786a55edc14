package services

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"tripserver/database"
	apperrors "tripserver/server/errors"
)

// AuthService регистрация, вход и сессии пользователей.
// Сессии живут в памяти процесса: токен (uuid) -> ID пользователя.
// При рестарте сервера все сессии сбрасываются, что для данного API приемлемо.
type AuthService struct {
	db *database.DB

	mu       sync.RWMutex
	sessions map[string]int
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(db *database.DB) *AuthService {
	return &AuthService{
		db:       db,
		sessions: make(map[string]int),
	}
}

// Register регистрирует нового пользователя и сразу открывает сессию
func (s *AuthService) Register(name, email, phone, password string) (*database.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email и пароль обязательны", nil)
	}
	if len(password) < 6 {
		return nil, "", apperrors.NewValidationError("пароль должен быть не короче 6 символов", nil)
	}

	existing, err := s.db.GetUserByEmail(email)
	if err != nil {
		return nil, "", apperrors.NewInternalError("не удалось проверить email", err)
	}
	if existing != nil {
		return nil, "", apperrors.NewConflictError("Пользователь с таким email уже существует", nil)
	}

	user, err := s.db.CreateUser(strings.TrimSpace(name), email, strings.TrimSpace(phone), password)
	if err != nil {
		return nil, "", apperrors.NewInternalError("не удалось создать пользователя", err)
	}

	token := s.openSession(user.ID)
	return user, token, nil
}

// Login проверяет пароль и открывает сессию
func (s *AuthService) Login(email, password string) (*database.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email и пароль обязательны", nil)
	}

	user, err := s.db.GetUserByEmail(email)
	if err != nil {
		return nil, "", apperrors.NewInternalError("не удалось найти пользователя", err)
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, "", apperrors.NewUnauthorizedError("Неверный email или пароль", nil)
	}

	token := s.openSession(user.ID)
	return user, token, nil
}

// Logout закрывает сессию. Незнакомый токен не считается ошибкой.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// UserByToken возвращает пользователя по токену сессии
func (s *AuthService) UserByToken(token string) (*database.User, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("Требуется авторизация", nil)
	}

	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewUnauthorizedError("Сессия не найдена или истекла", nil)
	}

	user, err := s.db.GetUserByID(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить пользователя", err)
	}
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("Пользователь не найден", nil)
	}
	return user, nil
}

// UpdateProfile обновляет профиль пользователя текущей сессии
func (s *AuthService) UpdateProfile(token, name, phone, avatarURL, upiID string) (*database.User, error) {
	user, err := s.UserByToken(token)
	if err != nil {
		return nil, err
	}

	updated, err := s.db.UpdateUserProfile(user.ID, name, phone, avatarURL, upiID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось обновить профиль", err)
	}
	return updated, nil
}

// openSession выдает новый токен сессии для пользователя
func (s *AuthService) openSession(userID int) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripserver/server/services"
)

// AuthHandler обработчик регистрации, входа и профиля
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// registerRequest тело запроса регистрации
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// loginRequest тело запроса входа
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// profileUpdateRequest тело запроса обновления профиля
type profileUpdateRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	UpiID     string `json:"upi_id"`
}

// HandleRegister обработчик регистрации пользователя
// @Summary Зарегистрировать пользователя
// @Description Создает пользователя и сразу открывает сессию
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Данные регистрации"
// @Success 201 {object} map[string]interface{} "Пользователь и токен сессии"
// @Failure 400 {object} middleware.ErrorResponse "Некорректные данные"
// @Failure 409 {object} middleware.ErrorResponse "Email уже занят"
// @Router /auth/register [post]
func (h *AuthHandler) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Некорректное тело запроса: требуются email и password")
		return
	}

	user, token, err := h.auth.Register(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// HandleLogin обработчик входа
// @Summary Войти
// @Description Проверяет пароль и открывает сессию
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Email и пароль"
// @Success 200 {object} map[string]interface{} "Пользователь и токен сессии"
// @Failure 401 {object} middleware.ErrorResponse "Неверный email или пароль"
// @Router /auth/login [post]
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Некорректное тело запроса: требуются email и password")
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// HandleLogout обработчик выхода
// @Summary Выйти
// @Description Закрывает текущую сессию
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Сессия закрыта"
// @Router /auth/logout [post]
func (h *AuthHandler) HandleLogout(c *gin.Context) {
	h.auth.Logout(tokenFromRequest(c))
	SendJSONResponse(c, http.StatusOK, gin.H{"message": "Вы вышли из системы"})
}

// HandleGetProfile обработчик получения профиля
// @Summary Получить профиль
// @Description Возвращает профиль пользователя текущей сессии
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} database.User "Профиль"
// @Failure 401 {object} middleware.ErrorResponse "Требуется авторизация"
// @Router /auth/profile [get]
func (h *AuthHandler) HandleGetProfile(c *gin.Context) {
	user, err := h.auth.UserByToken(tokenFromRequest(c))
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, user)
}

// HandleUpdateProfile обработчик обновления профиля
// @Summary Обновить профиль
// @Description Обновляет изменяемые поля профиля. Пустые значения не затирают существующие
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body profileUpdateRequest true "Изменяемые поля"
// @Success 200 {object} database.User "Обновленный профиль"
// @Failure 401 {object} middleware.ErrorResponse "Требуется авторизация"
// @Router /auth/profile [put]
func (h *AuthHandler) HandleUpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	user, err := h.auth.UpdateProfile(tokenFromRequest(c), req.Name, req.Phone, req.AvatarURL, req.UpiID)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, user)
}

// tokenFromRequest извлекает токен сессии из Authorization: Bearer
// или заголовка X-Auth-Token
func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.GetHeader("X-Auth-Token")
}

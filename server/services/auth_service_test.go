package services

import (
	"testing"
)

func TestRegisterLoginLogout(t *testing.T) {
	db := seededTestDB(t)
	s := NewAuthService(db)

	user, token, err := s.Register("Alice", "Alice@Example.com", "+100", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("регистрация не открыла сессию")
	}
	// Email нормализуется к нижнему регистру
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q", user.Email)
	}

	loaded, err := s.UserByToken(token)
	if err != nil {
		t.Fatalf("UserByToken: %v", err)
	}
	if loaded.ID != user.ID {
		t.Errorf("сессия вернула другого пользователя: %d != %d", loaded.ID, user.ID)
	}

	// Повторная регистрация того же email
	if _, _, err := s.Register("Bob", "alice@example.com", "", "secret456"); statusOf(t, err) != 409 {
		t.Error("повторная регистрация должна давать 409")
	}

	// Вход с неверным паролем
	if _, _, err := s.Login("alice@example.com", "wrong"); statusOf(t, err) != 401 {
		t.Error("неверный пароль должен давать 401")
	}

	_, loginToken, err := s.Login("alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginToken == token {
		t.Error("вход должен выдавать новый токен")
	}

	s.Logout(loginToken)
	if _, err := s.UserByToken(loginToken); statusOf(t, err) != 401 {
		t.Error("закрытая сессия должна давать 401")
	}
	// Первая сессия продолжает жить
	if _, err := s.UserByToken(token); err != nil {
		t.Errorf("первая сессия не должна закрываться: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := seededTestDB(t)
	s := NewAuthService(db)

	if _, _, err := s.Register("", "", "", ""); statusOf(t, err) != 400 {
		t.Error("пустые email и пароль должны давать 400")
	}
	if _, _, err := s.Register("", "a@b.c", "", "short"); statusOf(t, err) != 400 {
		t.Error("короткий пароль должен давать 400")
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	db := seededTestDB(t)
	s := NewAuthService(db)

	if _, err := s.UpdateProfile("", "X", "", "", ""); statusOf(t, err) != 401 {
		t.Error("обновление без токена должно давать 401")
	}

	_, token, err := s.Register("Alice", "alice@example.com", "+100", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := s.UpdateProfile(token, "Alice Cooper", "", "", "upi@bank")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Alice Cooper" || updated.UpiID != "upi@bank" {
		t.Errorf("профиль = %+v", updated)
	}
	if updated.Phone != "+100" {
		t.Errorf("пустое значение затерло телефон: %q", updated.Phone)
	}
}

package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// AuthService проверяет учётные данные единственного администратора лиги.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (string, error)
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authService struct {
	username     string
	passwordHash []byte
}

// NewAuthService; an empty passwordHash rejects every login.
func NewAuthService(username, passwordHash string) AuthService {
	return &authService{
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Login returns the authenticated username.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	if len(s.passwordHash) == 0 || input.Username == "" || input.Password == "" {
		return "", ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.username)) == 1
	// Хеш проверяем всегда, чтобы время ответа не выдавало имя пользователя
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return s.username, nil
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hash), nil
}

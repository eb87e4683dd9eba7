// Package auth содержит логику регистрации, входа и проверки токенов.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/password"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateProfile обновляет изменяемые поля профиля.
	UpdateProfile(ctx context.Context, userUID, email, phone, city string) (int, error)
	// TouchLastLogin фиксирует время последнего входа.
	TouchLastLogin(ctx context.Context, userUID string) error
}

// AuthService отвечает за регистрацию, авторизацию, обновление токенов
// и работу с профилем.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью user.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Phone:        req.Phone,
		City:         req.City,
		IsActive:     true,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя, фиксирует вход и генерирует
// пару access/refresh токенов.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, refresh, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: invalid credentials", models.ErrUnauthenticated)
	}
	if !user.IsActive {
		return "", "", "", fmt.Errorf("%w: account is deactivated", models.ErrForbidden)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", "", fmt.Errorf("%w: invalid credentials", models.ErrUnauthenticated)
	}

	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", "", err
	}
	refresh, err = s.jwtMaker.GenerateRefreshToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", "", err
	}

	if err := s.users.TouchLastLogin(ctx, user.UID); err != nil {
		s.log.Warn("failed to touch last login", slog.String("uid", user.UID), slog.Any("err", err))
	}
	return token, refresh, user.Role, nil
}

// Refresh проверяет refresh-токен и выдает новую пару токенов.
// Роль перечитывается из хранилища на случай её изменения.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (token, refresh string, err error) {
	claims, err := s.jwtMaker.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return "", "", fmt.Errorf("%w: invalid refresh token", models.ErrUnauthenticated)
	}

	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid refresh token", models.ErrUnauthenticated)
	}
	if !user.IsActive {
		return "", "", fmt.Errorf("%w: account is deactivated", models.ErrForbidden)
	}

	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.jwtMaker.GenerateRefreshToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, refresh, nil
}

// ValidateToken проверяет access-токен и возвращает его claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return nil, fmt.Errorf("%w: invalid token", models.ErrUnauthenticated)
	}
	return claims, nil
}

// Profile возвращает профиль пользователя.
func (s *AuthService) Profile(ctx context.Context, userUID string) (*models.ProfileInfo, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileInfo{
		UID:       user.UID,
		Email:     user.Email,
		Phone:     user.Phone,
		City:      user.City,
		LastLogin: user.LastLogin,
	}, nil
}

// UpdateProfile обновляет непустые поля профиля пользователя.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID string, req models.DummyProfile) (*models.ProfileInfo, error) {
	if _, err := s.users.UpdateProfile(ctx, userUID, req.Email, req.Phone, req.City); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userUID)
}

package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"`    // Электронная почта пользователя
	Role                 string `json:"role"`     // Роль пользователя
	UserUID              string `json:"user_uid"` // Идентификатор пользователя
	TokenType            string `json:"token_type"`
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Типы токенов, различаются при обновлении: refresh-токен нельзя
// использовать как access и наоборот.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

func (j *MakerImpl) generate(email, role, userUID, tokenType string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		Email:     email,
		Role:      role,
		UserUID:   userUID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// GenerateToken создает access-токен с заданными email, role и userUID.
func (j *MakerImpl) GenerateToken(email, role, userUID string) (string, error) {
	return j.generate(email, role, userUID, TokenTypeAccess, j.tokenTTL)
}

// GenerateRefreshToken создает refresh-токен с заданными email, role и userUID.
func (j *MakerImpl) GenerateRefreshToken(email, role, userUID string) (string, error) {
	return j.generate(email, role, userUID, TokenTypeRefresh, j.refreshTTL)
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

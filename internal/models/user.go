// Package models содержит доменные структуры платформы курсов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей. Роль moderator дает право читать и изменять
// любые курсы и уроки независимо от владельца.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
)

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Email        string     // Электронная почта (уникальная)
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя, user или moderator
	Phone        string     // Телефон (опционально)
	City         string     // Город (опционально)
	IsActive     bool       // Признак активного аккаунта
	LastLogin    *time.Time // Время последнего входа, nil если не входил
	CreatedAt    time.Time
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty" validate:"omitempty"`
	City     string `json:"city,omitempty" validate:"omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyProfile используется для приёма обновления профиля из JSON-запроса.
// Пустые поля при частичном обновлении не изменяются.
type DummyProfile struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty"`
	City  string `json:"city,omitempty" validate:"omitempty"`
}

// ProfileInfo описывает поля профиля, отдаваемые наружу.
// Хэш пароля и служебные флаги наружу не отдаются.
type ProfileInfo struct {
	UID       string     `json:"uid"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	City      string     `json:"city,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

package models

import "time"

// Course представляет собой основную модель курса,
// используемую в бизнес-логике и хранилище.
// Поля StripeProductID и StripePriceID заполняются лениво
// при первом создании платежной сессии и далее переиспользуются.
type Course struct {
	ID              int
	Title           string // Название курса
	Description     string // Описание курса
	Preview         string // Ссылка на превью, пустая строка если нет
	OwnerUID        string // UID пользователя-владельца
	Price           int    // Цена в минимальных единицах валюты
	StripeProductID string // ID продукта у платежного провайдера
	StripePriceID   string // ID цены у платежного провайдера
	UpdatedAt       time.Time
}

// DummyCourse используется для приёма данных курса из JSON-запроса.
type DummyCourse struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Preview     string `json:"preview,omitempty" validate:"omitempty,url"`
	Price       int    `json:"price" validate:"required,gt=0"`
}

// PatchCourse используется для приёма частичного обновления курса из
// JSON-запроса. Пустые поля оставляют текущие значения без изменений.
type PatchCourse struct {
	Title       string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string `json:"description,omitempty"`
	Preview     string `json:"preview,omitempty" validate:"omitempty,url"`
	Price       int    `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// CourseInfo описывает курс в ответах API вместе с производными полями:
// количеством уроков и признаком подписки запрашивающего пользователя.
type CourseInfo struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Preview      string    `json:"preview,omitempty"`
	OwnerUID     string    `json:"owner_uid"`
	Price        int       `json:"price"`
	LessonCount  int       `json:"lesson_count"`
	IsSubscribed bool      `json:"is_subscribed"`
	UpdatedAt    time.Time `json:"updated_at"`
}

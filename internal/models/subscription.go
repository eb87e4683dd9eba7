package models

import "time"

// Subscription связывает пользователя и курс: пользователь хочет
// получать уведомления об обновлениях курса. На пару (user_uid, course_id)
// в хранилище существует не больше одной строки.
type Subscription struct {
	ID        int
	UserUID   string
	CourseID  int
	CreatedAt time.Time
}

// DummySubscribe используется для приёма запроса на переключение подписки.
type DummySubscribe struct {
	CourseID int `json:"course_id" validate:"required,gt=0"`
}

// Результаты переключения подписки.
const (
	SubscribeOutcomeSubscribed   = "subscribed"
	SubscribeOutcomeUnsubscribed = "unsubscribed"
)

// CourseUpdateInfo сообщение очереди уведомлений об обновлении курса:
// один экземпляр на каждого подписчика.
type CourseUpdateInfo struct {
	Email       string `json:"email"`
	CourseTitle string `json:"course_title"`
}

// DeactivationInfo сообщение очереди уведомлений о деактивации аккаунта.
type DeactivationInfo struct {
	Email string `json:"email"`
}

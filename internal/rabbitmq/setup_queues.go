// Package rabbitmq содержит подключение к брокеру уведомлений,
// объявление очередей, публикацию и потребление сообщений.
package rabbitmq

// Exchange имя exchange для всех уведомлений платформы.
const Exchange = "notifications"

// Ключи маршрутизации уведомлений.
const (
	RoutingKeyCourseUpdated      = "course.updated"
	RoutingKeyAccountDeactivated = "account.deactivated"
)

// Имена очередей уведомлений.
const (
	QueueCourseUpdated      = "notification.course-updated"
	QueueAccountDeactivated = "notification.account-deactivated"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений платформы.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueCourseUpdated, RoutingKey: RoutingKeyCourseUpdated},
		{QueueName: QueueAccountDeactivated, RoutingKey: RoutingKeyAccountDeactivated},
	}
}

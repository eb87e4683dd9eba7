// Package notifier реализует рассылку уведомлений подписчикам курса.
//
// На каждое подходящее обновление курса каждый подписчик получает ровно
// одну публикацию в очередь. Доставка асинхронная: вызывающий не ждет
// отправки письма и не получает подтверждения.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/rabbitmq"
)

// SubscriptionRepository определяет методы чтения подписчиков.
type SubscriptionRepository interface {
	// ListSubscriberEmails возвращает адреса всех подписчиков курса.
	ListSubscriberEmails(ctx context.Context, courseID int) ([]string, error)
}

// NotifierService публикует уведомления об обновлении курса.
type NotifierService struct {
	repo SubscriptionRepository
	pub  rabbitmq.Publisher
	log  *slog.Logger
}

// New создает новый экземпляр NotifierService.
func New(repo SubscriptionRepository, pub rabbitmq.Publisher, log *slog.Logger) *NotifierService {
	return &NotifierService{
		repo: repo,
		pub:  pub,
		log:  log,
	}
}

// NotifySubscribers перечисляет подписчиков курса и публикует по одному
// сообщению на каждого. Ошибка публикации одного сообщения не прерывает
// рассылку остальным.
func (s *NotifierService) NotifySubscribers(ctx context.Context, courseID int, courseTitle string) error {
	const op = "notifier.NotifySubscribers"

	emails, err := s.repo.ListSubscriberEmails(ctx, courseID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, email := range emails {
		info := models.CourseUpdateInfo{
			Email:       email,
			CourseTitle: courseTitle,
		}
		if err := s.pub.Publish(rabbitmq.Exchange, rabbitmq.RoutingKeyCourseUpdated, info); err != nil {
			s.log.Error("failed to publish course update notification",
				slog.String("email", email), sl.Err(err))
		}
	}

	s.log.Info("course update notifications enqueued",
		slog.Int("course_id", courseID), slog.Int("subscribers", len(emails)))
	return nil
}

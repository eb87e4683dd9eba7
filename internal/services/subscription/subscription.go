// Package subscription содержит бизнес-логику переключения подписки
// пользователя на обновления курса.
package subscription

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// FindSubscription ищет подписку пары (user_uid, course_id).
	FindSubscription(ctx context.Context, userUID string, courseID int) (int, bool, error)
	// CreateSubscription создает подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, userUID string, courseID int) (int, error)
	// RemoveSubscription удаляет подписку пары (user_uid, course_id).
	RemoveSubscription(ctx context.Context, userUID string, courseID int) (int, error)
}

// SubscriptionService реализует переключение подписки.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// New создает новый экземпляр SubscriptionService.
func New(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Toggle переключает подписку актора на курс: существующая подписка
// удаляется, отсутствующая создается. Возвращает итоговое состояние.
//
// Последовательность поиск-затем-действие не атомарна относительно
// конкурентных запросов того же пользователя; дубликат при гонке
// отбрасывается уникальным индексом (user_uid, course_id) в схеме.
func (s *SubscriptionService) Toggle(ctx context.Context, actorUID string, courseID int) (string, error) {
	if _, err := s.repo.ReadCourse(ctx, courseID); err != nil {
		return "", err
	}

	_, found, err := s.repo.FindSubscription(ctx, actorUID, courseID)
	if err != nil {
		return "", err
	}

	if found {
		if _, err := s.repo.RemoveSubscription(ctx, actorUID, courseID); err != nil {
			return "", err
		}
		s.log.Info("subscription removed",
			slog.String("user_uid", actorUID), slog.Int("course_id", courseID))
		return models.SubscribeOutcomeUnsubscribed, nil
	}

	if _, err := s.repo.CreateSubscription(ctx, actorUID, courseID); err != nil {
		return "", err
	}
	s.log.Info("subscription created",
		slog.String("user_uid", actorUID), slog.Int("course_id", courseID))
	return models.SubscribeOutcomeSubscribed, nil
}

// Package scheduler реализует ежесуточную деактивацию неактивных аккаунтов.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-platform/internal/config"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/rabbitmq"
)

// UserRepository описывает операции с пользователями, нужные планировщику.
type UserRepository interface {
	// FindIdleActiveUsers возвращает активных пользователей, не входивших
	// с момента cutoff.
	FindIdleActiveUsers(ctx context.Context, cutoff time.Time) ([]*models.User, error)
	// DeactivateUser помечает аккаунт неактивным, возвращает число
	// затронутых строк.
	DeactivateUser(ctx context.Context, userUID string) (int, error)
}

// SchedulerService периодически деактивирует аккаунты без входов
// дольше заданного порога и публикует уведомления.
type SchedulerService struct {
	users UserRepository
	pub   rabbitmq.Publisher
	cfg   config.Scheduler
	log   *slog.Logger
	now   func() time.Time
}

// New создает новый экземпляр SchedulerService.
func New(users UserRepository, pub rabbitmq.Publisher, cfg config.Scheduler, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		users: users,
		pub:   pub,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Run запускает цикл деактивации с интервалом из конфигурации.
// Первый проход выполняется сразу. Блокируется до отмены контекста.
func (s *SchedulerService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.DeactivationInterval)
	defer ticker.Stop()

	for {
		if err := s.DeactivateIdleUsers(ctx); err != nil {
			s.log.Error("deactivation run failed", sl.Err(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// DeactivateIdleUsers выполняет один проход деактивации: находит
// пользователей без входов дольше порога, деактивирует каждого и
// публикует уведомление. Ошибка по одному пользователю не прерывает проход.
func (s *SchedulerService) DeactivateIdleUsers(ctx context.Context) error {
	const op = "services.scheduler.DeactivateIdleUsers"

	cutoff := s.now().Add(-s.cfg.InactivityThreshold)
	users, err := s.users.FindIdleActiveUsers(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var deactivated int
	for _, user := range users {
		affected, err := s.users.DeactivateUser(ctx, user.UID)
		if err != nil {
			s.log.Error("failed to deactivate user",
				slog.String("uid", user.UID), sl.Err(err))
			continue
		}
		if affected == 0 {
			continue
		}
		deactivated++

		msg := models.DeactivationInfo{Email: user.Email}
		if err := s.pub.Publish(rabbitmq.Exchange, rabbitmq.RoutingKeyAccountDeactivated, msg); err != nil {
			s.log.Error("failed to publish deactivation notification",
				slog.String("email", user.Email), sl.Err(err))
		}
	}

	s.log.Info("deactivation run completed",
		slog.Int("candidates", len(users)),
		slog.Int("deactivated", deactivated))
	return nil
}

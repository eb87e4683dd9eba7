// Package lesson содержит бизнес-логику для управления уроками.
package lesson

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-platform/internal/authz"
	"github.com/magabrotheeeer/course-platform/internal/lib/videolink"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// courseStaleness порог давности обновления курса. Если курс обновлялся
// позже этого порога, изменение урока не порождает новой рассылки:
// подписчики уже получили уведомление о недавнем изменении.
const courseStaleness = 4 * time.Hour

// LessonRepository определяет методы для работы с уроками в хранилище.
type LessonRepository interface {
	// CreateLesson добавляет новый урок и возвращает его ID.
	CreateLesson(ctx context.Context, lesson models.Lesson) (int, error)
	// ReadLesson возвращает урок по ID.
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
	// ListLessonsByOwner возвращает уроки владельца с пагинацией.
	ListLessonsByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Lesson, error)
	// ListAllLessons возвращает все уроки с пагинацией.
	ListAllLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error)
	// UpdateLesson обновляет данные урока по ID.
	UpdateLesson(ctx context.Context, lesson models.Lesson, id int) (int, error)
	// UpdateLessonPartial обновляет только заполненные поля урока.
	UpdateLessonPartial(ctx context.Context, lesson models.Lesson, id int) (int, error)
	// RemoveLesson удаляет урок по ID.
	RemoveLesson(ctx context.Context, id int) (int, error)
	// ReadCourse возвращает родительский курс урока.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// TouchCourse обновляет updated_at родительского курса.
	TouchCourse(ctx context.Context, id int) error
}

// Notifier описывает рассылку уведомлений подписчикам курса.
type Notifier interface {
	NotifySubscribers(ctx context.Context, courseID int, courseTitle string) error
}

// LessonService реализует бизнес-логику работы с уроками, включая проверку
// ссылок на видео и отложенную рассылку уведомлений подписчикам курса.
type LessonService struct {
	repo     LessonRepository
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый экземпляр LessonService.
func New(repo LessonRepository, notifier Notifier, log *slog.Logger) *LessonService {
	return &LessonService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Create создает урок после проверки ссылки на видео и существования курса.
// Владельцем урока становится актор.
func (s *LessonService) Create(ctx context.Context, actorUID string, req models.DummyLesson) (int, error) {
	if err := videolink.Validate(req.VideoURL); err != nil {
		return 0, err
	}
	if _, err := s.repo.ReadCourse(ctx, req.CourseID); err != nil {
		return 0, err
	}

	lesson := models.Lesson{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		VideoURL:    req.VideoURL,
		OwnerUID:    actorUID,
	}
	id, err := s.repo.CreateLesson(ctx, lesson)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new lesson", slog.Int("id", id), slog.Int("course_id", req.CourseID))
	return id, nil
}

// Read возвращает урок. Доступ имеют владелец и модератор.
func (s *LessonService) Read(ctx context.Context, id int, actorUID, actorRole string) (*models.Lesson, error) {
	lesson, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, lesson.OwnerUID), authz.ActionRead) {
		return nil, models.ErrForbidden
	}
	return lesson, nil
}

// List возвращает уроки в зависимости от роли актора.
func (s *LessonService) List(ctx context.Context, actorUID, actorRole string, limit, offset int) ([]*models.Lesson, error) {
	if authz.ListScopedToOwner(actorRole) {
		return s.repo.ListLessonsByOwner(ctx, actorUID, limit, offset)
	}
	return s.repo.ListAllLessons(ctx, limit, offset)
}

// Update обновляет урок после проверки прав и ссылки на видео.
// Если родительский курс не обновлялся дольше порога давности,
// подписчики курса получают рассылку с названием урока; сам курс при
// этом помечается обновлённым, чтобы серия быстрых правок не породила
// повторных рассылок.
func (s *LessonService) Update(ctx context.Context, id int, actorUID, actorRole string, req models.DummyLesson) (int, error) {
	if err := videolink.Validate(req.VideoURL); err != nil {
		return 0, err
	}

	existing, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, existing.OwnerUID), authz.ActionUpdate) {
		return 0, models.ErrForbidden
	}

	course, err := s.repo.ReadCourse(ctx, existing.CourseID)
	if err != nil {
		return 0, err
	}
	stale := s.now().Sub(course.UpdatedAt) >= courseStaleness

	lesson := models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		VideoURL:    req.VideoURL,
	}
	res, err := s.repo.UpdateLesson(ctx, lesson, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated lesson in storage", slog.Int("id", id))

	if err := s.repo.TouchCourse(ctx, course.ID); err != nil {
		s.log.Warn("failed to touch parent course", slog.Int("course_id", course.ID), slog.Any("err", err))
	}

	if stale {
		if err := s.notifier.NotifySubscribers(ctx, course.ID, existing.Title); err != nil {
			s.log.Error("failed to notify subscribers", slog.Int("course_id", course.ID), slog.Any("err", err))
		}
	}
	return res, nil
}

// PartialUpdate обновляет только переданные поля урока. Пустая ссылка
// на видео не проверяется и оставляет текущую. Порог давности и
// рассылка работают так же, как при полном обновлении.
func (s *LessonService) PartialUpdate(ctx context.Context, id int, actorUID, actorRole string, req models.PatchLesson) (int, error) {
	if req.VideoURL != "" {
		if err := videolink.Validate(req.VideoURL); err != nil {
			return 0, err
		}
	}

	existing, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, existing.OwnerUID), authz.ActionUpdate) {
		return 0, models.ErrForbidden
	}

	course, err := s.repo.ReadCourse(ctx, existing.CourseID)
	if err != nil {
		return 0, err
	}
	stale := s.now().Sub(course.UpdatedAt) >= courseStaleness

	lesson := models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		VideoURL:    req.VideoURL,
	}
	res, err := s.repo.UpdateLessonPartial(ctx, lesson, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("partially updated lesson in storage", slog.Int("id", id))

	if err := s.repo.TouchCourse(ctx, course.ID); err != nil {
		s.log.Warn("failed to touch parent course", slog.Int("course_id", course.ID), slog.Any("err", err))
	}

	if stale {
		if err := s.notifier.NotifySubscribers(ctx, course.ID, existing.Title); err != nil {
			s.log.Error("failed to notify subscribers", slog.Int("course_id", course.ID), slog.Any("err", err))
		}
	}
	return res, nil
}

// Remove удаляет урок после проверки прав.
func (s *LessonService) Remove(ctx context.Context, id int, actorUID, actorRole string) (int, error) {
	existing, err := s.repo.ReadLesson(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, existing.OwnerUID), authz.ActionDelete) {
		return 0, models.ErrForbidden
	}
	return s.repo.RemoveLesson(ctx, id)
}

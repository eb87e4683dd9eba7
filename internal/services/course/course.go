// Package course содержит бизнес-логику для управления курсами.
package course

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-platform/internal/authz"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CourseRepository определяет методы для работы с курсами в хранилище.
type CourseRepository interface {
	// CreateCourse добавляет новый курс и возвращает его ID.
	CreateCourse(ctx context.Context, course models.Course) (int, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// ReadCourseInfo возвращает курс с производными полями для актора.
	ReadCourseInfo(ctx context.Context, id int, actorUID string) (*models.CourseInfo, error)
	// ListCoursesByOwner возвращает курсы владельца с пагинацией.
	ListCoursesByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.CourseInfo, error)
	// ListAllCourses возвращает все курсы с пагинацией.
	ListAllCourses(ctx context.Context, actorUID string, limit, offset int) ([]*models.CourseInfo, error)
	// UpdateCourse обновляет данные курса по ID.
	UpdateCourse(ctx context.Context, course models.Course, id int) (int, error)
	// UpdateCoursePartial обновляет только заполненные поля курса.
	UpdateCoursePartial(ctx context.Context, course models.Course, id int) (int, error)
	// RemoveCourse удаляет курс по ID.
	RemoveCourse(ctx context.Context, id int) (int, error)
}

// Notifier описывает рассылку уведомлений подписчикам курса.
type Notifier interface {
	NotifySubscribers(ctx context.Context, courseID int, courseTitle string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	InvalidateByPrefix(prefix string) error
}

// CourseService реализует бизнес-логику работы с курсами: проверку прав,
// кеширование чтений и запуск рассылки уведомлений после обновления.
type CourseService struct {
	repo     CourseRepository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// New создает новый экземпляр CourseService.
func New(repo CourseRepository, cache Cache, notifier Notifier, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

func cacheKey(id int, actorUID string) string {
	return fmt.Sprintf("course:%d:%s", id, actorUID)
}

// cacheKeyPrefix покрывает записи курса для всех акторов: курс мог быть
// закеширован не только тем, кто его сейчас изменяет.
func cacheKeyPrefix(id int) string {
	return fmt.Sprintf("course:%d:", id)
}

// Create создает курс, владельцем становится актор.
func (s *CourseService) Create(ctx context.Context, actorUID string, req models.DummyCourse) (int, error) {
	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		OwnerUID:    actorUID,
		Price:       req.Price,
	}

	id, err := s.repo.CreateCourse(ctx, course)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new course", slog.Int("id", id))
	return id, nil
}

// Read возвращает курс с производными полями, используя кеш.
// Доступ имеют владелец и модератор.
func (s *CourseService) Read(ctx context.Context, id int, actorUID, actorRole string) (*models.CourseInfo, error) {
	var cached *models.CourseInfo
	key := cacheKey(id, actorUID)
	found, err := s.cache.Get(key, &cached)
	if err == nil && found {
		if !authz.Allow(authz.RoleFor(actorUID, actorRole, cached.OwnerUID), authz.ActionRead) {
			return nil, models.ErrForbidden
		}
		return cached, nil
	}

	info, err := s.repo.ReadCourseInfo(ctx, id, actorUID)
	if err != nil {
		return nil, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, info.OwnerUID), authz.ActionRead) {
		return nil, models.ErrForbidden
	}

	if err := s.cache.Set(key, info, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", key), slog.Any("err", err))
	}
	return info, nil
}

// List возвращает курсы в зависимости от роли актора: модератор видит
// все строки, остальные только собственные.
func (s *CourseService) List(ctx context.Context, actorUID, actorRole string, limit, offset int) ([]*models.CourseInfo, error) {
	if authz.ListScopedToOwner(actorRole) {
		return s.repo.ListCoursesByOwner(ctx, actorUID, limit, offset)
	}
	return s.repo.ListAllCourses(ctx, actorUID, limit, offset)
}

// Update обновляет курс после проверки прав и запускает рассылку
// уведомлений всем текущим подписчикам. Ошибка рассылки не откатывает
// и не прерывает обновление.
func (s *CourseService) Update(ctx context.Context, id int, actorUID, actorRole string, req models.DummyCourse) (int, error) {
	existing, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, existing.OwnerUID), authz.ActionUpdate) {
		return 0, models.ErrForbidden
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		Price:       req.Price,
	}
	res, err := s.repo.UpdateCourse(ctx, course, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated course in storage", slog.Int("id", id))

	if err := s.cache.InvalidateByPrefix(cacheKeyPrefix(id)); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.Any("err", err))
	}

	if err := s.notifier.NotifySubscribers(ctx, id, course.Title); err != nil {
		s.log.Error("failed to notify subscribers", slog.Int("course_id", id), slog.Any("err", err))
	}
	return res, nil
}

// PartialUpdate обновляет только переданные поля курса. Пустые поля
// запроса сохраняют текущие значения. Права и рассылка подписчикам
// работают так же, как при полном обновлении.
func (s *CourseService) PartialUpdate(ctx context.Context, id int, actorUID, actorRole string, req models.PatchCourse) (int, error) {
	existing, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, existing.OwnerUID), authz.ActionUpdate) {
		return 0, models.ErrForbidden
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Preview:     req.Preview,
		Price:       req.Price,
	}
	res, err := s.repo.UpdateCoursePartial(ctx, course, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("partially updated course in storage", slog.Int("id", id))

	if err := s.cache.InvalidateByPrefix(cacheKeyPrefix(id)); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.Any("err", err))
	}

	title := req.Title
	if title == "" {
		title = existing.Title
	}
	if err := s.notifier.NotifySubscribers(ctx, id, title); err != nil {
		s.log.Error("failed to notify subscribers", slog.Int("course_id", id), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет курс после проверки прав. Уроки и подписки курса
// удаляются каскадно.
func (s *CourseService) Remove(ctx context.Context, id int, actorUID, actorRole string) (int, error) {
	existing, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		return 0, err
	}
	if !authz.Allow(authz.RoleFor(actorUID, actorRole, existing.OwnerUID), authz.ActionDelete) {
		return 0, models.ErrForbidden
	}

	if err := s.cache.InvalidateByPrefix(cacheKeyPrefix(id)); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.Any("err", err))
	}

	return s.repo.RemoveCourse(ctx, id)
}

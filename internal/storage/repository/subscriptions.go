package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// FindSubscription ищет подписку пары (user_uid, course_id).
// Возвращает ID подписки и признак её существования.
func (s *Storage) FindSubscription(ctx context.Context, userUID string, courseID int) (int, bool, error) {
	const op = "storage.FindSubscription"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id FROM subscriptions WHERE user_uid = $1 AND course_id = $2`
	var id int
	err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return id, true, nil
}

// CreateSubscription создает подписку и возвращает её ID.
// Уникальный индекс (user_uid, course_id) не допускает дубликатов
// при конкурентных запросах.
func (s *Storage) CreateSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, course_id)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveSubscription удаляет подписку пары (user_uid, course_id)
// и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE user_uid = $1 AND course_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, courseID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriberEmails возвращает адреса всех подписчиков курса.
func (s *Storage) ListSubscriberEmails(ctx context.Context, courseID int) ([]string, error) {
	const op = "storage.ListSubscriberEmails"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email
			  FROM subscriptions sub
			  JOIN users u ON sub.user_uid = u.uid
			  WHERE sub.course_id = $1
			  ORDER BY sub.id`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, email)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadSubscription возвращает подписку по ID.
func (s *Storage) ReadSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, created_at FROM subscriptions WHERE id = $1`
	var sub models.Subscription
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&sub.ID, &sub.UserUID,
		&sub.CourseID, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

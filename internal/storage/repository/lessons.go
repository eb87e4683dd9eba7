package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CreateLesson вставляет новый урок и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (course_id, title, description, preview, video_url, owner_uid)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		lesson.CourseID, lesson.Title, lesson.Description, lesson.Preview,
		lesson.VideoURL, lesson.OwnerUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadLesson возвращает урок по его ID.
func (s *Storage) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	const op = "storage.ReadLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, preview, video_url, owner_uid
			  FROM lessons WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Lesson
	if err := row.Scan(&result.ID, &result.CourseID, &result.Title, &result.Description,
		&result.Preview, &result.VideoURL, &result.OwnerUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

func (s *Storage) queryLessons(ctx context.Context, op, query string, args ...any) ([]*models.Lesson, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lesson
	for rows.Next() {
		var item models.Lesson
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Title, &item.Description,
			&item.Preview, &item.VideoURL, &item.OwnerUID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListLessonsByOwner возвращает уроки владельца с пагинацией.
func (s *Storage) ListLessonsByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.Lesson, error) {
	const op = "storage.ListLessonsByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, preview, video_url, owner_uid
			  FROM lessons
			  WHERE owner_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	return s.queryLessons(ctx, op, query, ownerUID, limit, offset)
}

// ListAllLessons возвращает все уроки с пагинацией.
func (s *Storage) ListAllLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	const op = "storage.ListAllLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, preview, video_url, owner_uid
			  FROM lessons
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	return s.queryLessons(ctx, op, query, limit, offset)
}

// UpdateLesson обновляет данные урока и возвращает количество изменённых строк.
func (s *Storage) UpdateLesson(ctx context.Context, lesson models.Lesson, id int) (int, error) {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
			  SET title = $1, description = $2, preview = $3, video_url = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		lesson.Title, lesson.Description, lesson.Preview, lesson.VideoURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateLessonPartial обновляет только заполненные поля урока. Пустые
// значения оставляют текущее содержимое колонки без изменений.
func (s *Storage) UpdateLessonPartial(ctx context.Context, lesson models.Lesson, id int) (int, error) {
	const op = "storage.UpdateLessonPartial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
			  SET title = COALESCE(NULLIF($1, ''), title),
			      description = COALESCE(NULLIF($2, ''), description),
			      preview = COALESCE(NULLIF($3, ''), preview),
			      video_url = COALESCE(NULLIF($4, ''), video_url)
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		lesson.Title, lesson.Description, lesson.Preview, lesson.VideoURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveLesson удаляет урок по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveLesson(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM lessons WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

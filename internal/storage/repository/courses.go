package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, description, preview, owner_uid, price)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.Preview, course.OwnerUID, course.Price).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCourse возвращает курс по его ID.
func (s *Storage) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.ReadCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, preview, owner_uid, price,
			      stripe_product_id, stripe_price_id, updated_at
			  FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.Preview,
		&result.OwnerUID, &result.Price, &result.StripeProductID, &result.StripePriceID,
		&result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ReadCourseInfo возвращает курс с производными полями: количеством уроков
// и признаком подписки актора.
func (s *Storage) ReadCourseInfo(ctx context.Context, id int, actorUID string) (*models.CourseInfo, error) {
	const op = "storage.ReadCourseInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.description, c.preview, c.owner_uid, c.price, c.updated_at,
			      (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id) AS lesson_count,
			      EXISTS (SELECT 1 FROM subscriptions sub
			              WHERE sub.course_id = c.id AND sub.user_uid = $2) AS is_subscribed
			  FROM courses c
			  WHERE c.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id, actorUID)

	var result models.CourseInfo
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.Preview,
		&result.OwnerUID, &result.Price, &result.UpdatedAt,
		&result.LessonCount, &result.IsSubscribed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

const courseInfoColumns = `c.id, c.title, c.description, c.preview, c.owner_uid, c.price, c.updated_at,
			      (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id) AS lesson_count,
			      EXISTS (SELECT 1 FROM subscriptions sub
			              WHERE sub.course_id = c.id AND sub.user_uid = $1) AS is_subscribed`

func (s *Storage) queryCourseInfos(ctx context.Context, op, query string, args ...any) ([]*models.CourseInfo, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CourseInfo
	for rows.Next() {
		var item models.CourseInfo
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Preview,
			&item.OwnerUID, &item.Price, &item.UpdatedAt,
			&item.LessonCount, &item.IsSubscribed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCoursesByOwner возвращает курсы, принадлежащие владельцу, с пагинацией.
func (s *Storage) ListCoursesByOwner(ctx context.Context, ownerUID string, limit, offset int) ([]*models.CourseInfo, error) {
	const op = "storage.ListCoursesByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + courseInfoColumns + `
			  FROM courses c
			  WHERE c.owner_uid = $1
			  ORDER BY c.id
			  LIMIT $2 OFFSET $3`
	return s.queryCourseInfos(ctx, op, query, ownerUID, limit, offset)
}

// ListAllCourses возвращает все курсы с пагинацией. Производное поле
// is_subscribed считается для актора.
func (s *Storage) ListAllCourses(ctx context.Context, actorUID string, limit, offset int) ([]*models.CourseInfo, error) {
	const op = "storage.ListAllCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + courseInfoColumns + `
			  FROM courses c
			  ORDER BY c.id
			  LIMIT $2 OFFSET $3`
	return s.queryCourseInfos(ctx, op, query, actorUID, limit, offset)
}

// UpdateCourse обновляет данные курса и его updated_at,
// возвращает количество изменённых строк.
func (s *Storage) UpdateCourse(ctx context.Context, course models.Course, id int) (int, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, description = $2, preview = $3, price = $4, updated_at = NOW()
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		course.Title, course.Description, course.Preview, course.Price, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateCoursePartial обновляет только заполненные поля курса. Пустые
// значения оставляют текущее содержимое колонки без изменений.
func (s *Storage) UpdateCoursePartial(ctx context.Context, course models.Course, id int) (int, error) {
	const op = "storage.UpdateCoursePartial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = COALESCE(NULLIF($1, ''), title),
			      description = COALESCE(NULLIF($2, ''), description),
			      preview = COALESCE(NULLIF($3, ''), preview),
			      price = COALESCE(NULLIF($4, 0), price),
			      updated_at = NOW()
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		course.Title, course.Description, course.Preview, course.Price, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// TouchCourse обновляет только updated_at курса. Вызывается при
// сохранении уроков, т.к. курс считается изменённым вместе с ними.
func (s *Storage) TouchCourse(ctx context.Context, id int) error {
	const op = "storage.TouchCourse"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses SET updated_at = NOW() WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveCourse удаляет курс по ID. Уроки и подписки удаляются каскадно
// на уровне схемы. Возвращает количество удалённых строк.
func (s *Storage) RemoveCourse(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
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

// SetStripeProductID записывает ID продукта, только если он ещё не задан.
// Возвращает true, если запись произошла; false означает, что другой
// запрос успел записать ID раньше и его нужно перечитать.
func (s *Storage) SetStripeProductID(ctx context.Context, id int, productID string) (bool, error) {
	const op = "storage.SetStripeProductID"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses SET stripe_product_id = $1 WHERE id = $2 AND stripe_product_id = ''`
	result, err := s.DB.ExecContext(ctx, query, productID, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// SetStripePriceID записывает ID цены, только если он ещё не задан.
func (s *Storage) SetStripePriceID(ctx context.Context, id int, priceID string) (bool, error) {
	const op = "storage.SetStripePriceID"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses SET stripe_price_id = $1 WHERE id = $2 AND stripe_price_id = ''`
	result, err := s.DB.ExecContext(ctx, query, priceID, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

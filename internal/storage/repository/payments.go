package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CreatePayment сохраняет платеж и возвращает его ID.
// Инварианты платежа проверяются сервисным слоем до вызова.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, paid_course_id, paid_lesson_id, amount,
			      payment_method, stripe_payment_id, stripe_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.PaidCourseID, payment.PaidLessonID, payment.Amount,
		payment.PaymentMethod, payment.StripePaymentID, payment.StripeStatus).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает платежи с учётом фильтров по курсу, уроку и
// способу оплаты, отсортированные по дате платежа.
func (s *Storage) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.PaymentInfo, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	order := "ASC"
	if filter.OrderDesc {
		order = "DESC"
	}
	query := `SELECT id, user_uid, paid_course_id, paid_lesson_id, amount,
			      payment_method, stripe_payment_id, stripe_status, payment_date
			  FROM payments
			  WHERE ($1::int IS NULL OR paid_course_id = $1)
			    AND ($2::int IS NULL OR paid_lesson_id = $2)
			    AND ($3::text IS NULL OR payment_method = $3)
			  ORDER BY payment_date ` + order + `
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.PaidCourseID, filter.PaidLessonID, filter.PaymentMethod,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentInfo
	for rows.Next() {
		var item models.PaymentInfo
		if err := rows.Scan(&item.ID, &item.UserUID, &item.PaidCourseID, &item.PaidLessonID,
			&item.Amount, &item.PaymentMethod, &item.StripePaymentID, &item.StripeStatus,
			&item.PaymentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePaymentStatusBySession обновляет статус платежа по идентификатору
// платежной сессии провайдера. Возвращает количество изменённых строк.
func (s *Storage) UpdatePaymentStatusBySession(ctx context.Context, sessionID, status string) (int, error) {
	const op = "storage.UpdatePaymentStatusBySession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments SET stripe_status = $1 WHERE stripe_payment_id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, sessionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

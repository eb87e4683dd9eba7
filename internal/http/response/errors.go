package response

import (
	"errors"
	"net/http"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// StatusForError возвращает HTTP-статус, соответствующий доменной ошибке.
// Неизвестные ошибки считаются внутренними.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrPaymentProvider):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageForError возвращает текст ошибки для клиента: доменные ошибки
// отдаются как есть, внутренние скрываются за общим сообщением.
func MessageForError(err error) string {
	if StatusForError(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

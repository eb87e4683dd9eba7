// Package paymentlist реализует HTTP-обработчик получения списка платежей
// с фильтрацией по курсу, уроку и способу оплаты.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Handler обрабатывает запросы на получение списка платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка платежей.
type Service interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]*models.PaymentInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список платежей
// @Description Возвращает платежи с фильтрацией по курсу, уроку и способу оплаты.
// @Tags Payments
// @Produce  json
// @Param course_id query int false "Фильтр по ID курса"
// @Param lesson_id query int false "Фильтр по ID урока"
// @Param method query string false "Фильтр по способу оплаты (CASH или TRANSFER)"
// @Param order query string false "Порядок по дате: asc или desc" default(asc)
// @Param limit query int false "Максимум записей" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} response.Response "Список платежей"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры фильтра"
// @Security BearerAuth
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("failed to parse filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(response.StatusForError(err))
		render.JSON(w, r, response.Error(response.MessageForError(err)))
		return
	}

	log.Info("payments listed", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"payments":   res,
	}))
}

func parseFilter(r *http.Request) (models.PaymentFilter, error) {
	q := r.URL.Query()
	var filter models.PaymentFilter

	if raw := q.Get("course_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return filter, errInvalidParam("course_id")
		}
		filter.PaidCourseID = &id
	}
	if raw := q.Get("lesson_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return filter, errInvalidParam("lesson_id")
		}
		filter.PaidLessonID = &id
	}
	if raw := q.Get("method"); raw != "" {
		if raw != models.PaymentMethodCash && raw != models.PaymentMethodTransfer {
			return filter, errInvalidParam("method")
		}
		filter.PaymentMethod = &raw
	}
	filter.OrderDesc = q.Get("order") == "desc"

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	filter.Limit = limit

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Offset = offset

	return filter, nil
}

type invalidParamError struct {
	name string
}

func (e invalidParamError) Error() string {
	return "invalid query parameter: " + e.name
}

func errInvalidParam(name string) error {
	return invalidParamError{name: name}
}

// Package paymentcreate реализует HTTP-обработчик ручной регистрации платежа.
//
// Используется для фиксации оплат наличными и внешних переводов. Платеж
// проходит доменную валидацию: известный способ оплаты и ровно одна цель
// (курс или урок).
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Request — входные данные для регистрации платежа.
type Request struct {
	PaidCourseID    *int   `json:"paid_course_id,omitempty"`
	PaidLessonID    *int   `json:"paid_lesson_id,omitempty"`
	Amount          int    `json:"amount" validate:"required,gt=0"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	StripePaymentID string `json:"stripe_payment_id,omitempty"`
	StripeStatus    string `json:"stripe_status,omitempty"`
}

// Handler обрабатывает запросы на регистрацию платежей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации платежа.
type Service interface {
	RecordPayment(ctx context.Context, payment models.Payment) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать платеж
// @Description Сохраняет платеж наличными или переводом за курс либо урок.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные платежа"
// @Success 201 {object} response.Response "Платеж сохранен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нарушение инвариантов платежа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actorUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || actorUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	payment := models.Payment{
		UserUID:         actorUID,
		PaidCourseID:    req.PaidCourseID,
		PaidLessonID:    req.PaidLessonID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		StripePaymentID: req.StripePaymentID,
		StripeStatus:    req.StripeStatus,
	}

	id, err := h.service.RecordPayment(r.Context(), payment)
	if err != nil {
		log.Error("failed to record payment", sl.Err(err))
		w.WriteHeader(response.StatusForError(err))
		render.JSON(w, r, response.Error(response.MessageForError(err)))
		return
	}

	log.Info("payment recorded", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

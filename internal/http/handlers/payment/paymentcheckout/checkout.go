// Package paymentcheckout реализует HTTP-обработчик создания платежной сессии.
//
// Handler создает у платежного провайдера сессию оплаты курса и возвращает
// ссылку для перехода к оплате.
package paymentcheckout

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

// Request — входные данные для создания платежной сессии.
type Request struct {
	CourseID int `json:"course_id" validate:"required,gt=0"`
}

// Handler обрабатывает запросы на создание платежной сессии.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания платежной сессии.
type Service interface {
	CreateCheckout(ctx context.Context, actorUID string, courseID int) (*models.CheckoutResult, error)
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
// @Summary Создать платежную сессию
// @Description Создает сессию оплаты курса и возвращает ссылку на оплату.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "ID оплачиваемого курса"
// @Success 200 {object} response.Response "Сессия создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка платежного провайдера"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Security BearerAuth
// @Router /payments/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkout"

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

	result, err := h.service.CreateCheckout(r.Context(), actorUID, req.CourseID)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(response.StatusForError(err))
		render.JSON(w, r, response.Error(response.MessageForError(err)))
		return
	}

	log.Info("checkout session created", slog.String("session_id", result.SessionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_id": result.SessionID,
		"url":        result.URL,
	}))
}

// Package paymentstatus реализует HTTP-обработчик проверки состояния
// платежной сессии.
package paymentstatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Handler обрабатывает запросы о состоянии платежной сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки сессии.
type Service interface {
	CheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Состояние платежной сессии
// @Description Возвращает актуальное состояние платежной сессии у провайдера.
// @Tags Payments
// @Produce  json
// @Param session_id path string true "ID платежной сессии"
// @Success 200 {object} response.Response "Состояние сессии"
// @Failure 400 {object} response.ErrorResponse "Ошибка платежного провайдера"
// @Failure 404 {object} response.ErrorResponse "Сессия не найдена"
// @Security BearerAuth
// @Router /payments/status/{session_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		log.Error("session id missing in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("session id is required"))
		return
	}

	status, err := h.service.CheckoutStatus(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to retrieve checkout status", sl.Err(err))
		w.WriteHeader(response.StatusForError(err))
		render.JSON(w, r, response.Error(response.MessageForError(err)))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"checkout": status,
	}))
}

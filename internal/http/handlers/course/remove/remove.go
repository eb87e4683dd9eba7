// Package remove реализует HTTP-обработчик удаления курса.
//
// Удаление доступно владельцу курса и модератору. Уроки и подписки
// курса удаляются каскадно на уровне базы данных.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление курса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления курса.
type Service interface {
	Remove(ctx context.Context, id int, actorUID, actorRole string) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить курс
// @Description Удаляет курс по ID вместе с его уроками и подписками.
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Success 204 "Курс удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid course id"))
		return
	}

	actorUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	actorRole, _ := r.Context().Value(middlewarectx.Role).(string)

	if _, err := h.service.Remove(r.Context(), id, actorUID, actorRole); err != nil {
		log.Error("failed to remove course", sl.Err(err))
		w.WriteHeader(response.StatusForError(err))
		render.JSON(w, r, response.Error(response.MessageForError(err)))
		return
	}

	log.Info("course removed", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}

package courseplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/login"
	refreshhandler "github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/refresh"
	registerhandler "github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/register"
	coursecreate "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/create"
	courselist "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/list"
	coursepartialupdate "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/partialupdate"
	courseread "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/read"
	courseremove "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/remove"
	courseupdate "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/update"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/health"
	lessoncreate "github.com/magabrotheeeer/course-platform/internal/http/handlers/lesson/create"
	lessonlist "github.com/magabrotheeeer/course-platform/internal/http/handlers/lesson/list"
	lessonpartialupdate "github.com/magabrotheeeer/course-platform/internal/http/handlers/lesson/partialupdate"
	lessonread "github.com/magabrotheeeer/course-platform/internal/http/handlers/lesson/read"
	lessonremove "github.com/magabrotheeeer/course-platform/internal/http/handlers/lesson/remove"
	lessonupdate "github.com/magabrotheeeer/course-platform/internal/http/handlers/lesson/update"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/paymentcheckout"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/paymentstatus"
	profileread "github.com/magabrotheeeer/course-platform/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/course-platform/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/subscription/toggle"
	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/course-platform/internal/services/auth"
	courseservice "github.com/magabrotheeeer/course-platform/internal/services/course"
	lessonservice "github.com/magabrotheeeer/course-platform/internal/services/lesson"
	paymentservice "github.com/magabrotheeeer/course-platform/internal/services/payment"
	subscriptionservice "github.com/magabrotheeeer/course-platform/internal/services/subscription"
)

// Services группирует сервисы, нужные для регистрации маршрутов.
type Services struct {
	Auth         *authservice.AuthService
	Course       *courseservice.CourseService
	Lesson       *lessonservice.LessonService
	Subscription *subscriptionservice.SubscriptionService
	Payment      *paymentservice.PaymentService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", registerhandler.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", loginhandler.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/refresh", refreshhandler.New(logger, svc.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileread.New(logger, svc.Auth).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, svc.Auth).ServeHTTP)
			r.Patch("/profile", profileupdate.New(logger, svc.Auth).ServeHTTP)

			r.Post("/courses", coursecreate.New(logger, svc.Course).ServeHTTP)
			r.Get("/courses", courselist.New(logger, svc.Course).ServeHTTP)
			r.Get("/courses/{id}", courseread.New(logger, svc.Course).ServeHTTP)
			r.Put("/courses/{id}", courseupdate.New(logger, svc.Course).ServeHTTP)
			r.Patch("/courses/{id}", coursepartialupdate.New(logger, svc.Course).ServeHTTP)
			r.Delete("/courses/{id}", courseremove.New(logger, svc.Course).ServeHTTP)

			r.Post("/lessons", lessoncreate.New(logger, svc.Lesson).ServeHTTP)
			r.Get("/lessons", lessonlist.New(logger, svc.Lesson).ServeHTTP)
			r.Get("/lessons/{id}", lessonread.New(logger, svc.Lesson).ServeHTTP)
			r.Put("/lessons/{id}", lessonupdate.New(logger, svc.Lesson).ServeHTTP)
			r.Patch("/lessons/{id}", lessonpartialupdate.New(logger, svc.Lesson).ServeHTTP)
			r.Delete("/lessons/{id}", lessonremove.New(logger, svc.Lesson).ServeHTTP)

			r.Post("/subscriptions/toggle", toggle.New(logger, svc.Subscription).ServeHTTP)

			r.Post("/payments/checkout", paymentcheckout.New(logger, svc.Payment).ServeHTTP)
			r.Get("/payments/status/{session_id}", paymentstatus.New(logger, svc.Payment).ServeHTTP)
			r.Post("/payments", paymentcreate.New(logger, svc.Payment).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, svc.Payment).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

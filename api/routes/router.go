package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/reviewhub-backend/api/controllers"
	"github.com/angelmondragon/reviewhub-backend/api/middleware"
	"github.com/angelmondragon/reviewhub-backend/internal/admins"
	"github.com/angelmondragon/reviewhub-backend/internal/auth"
	"github.com/angelmondragon/reviewhub-backend/internal/comments"
	"github.com/angelmondragon/reviewhub-backend/internal/entities"
	"github.com/angelmondragon/reviewhub-backend/internal/notifications"
	"github.com/angelmondragon/reviewhub-backend/internal/submissions"
	"github.com/angelmondragon/reviewhub-backend/internal/users"
	"github.com/angelmondragon/reviewhub-backend/internal/validationqueue"
	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/enums"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"
	"github.com/angelmondragon/reviewhub-backend/pkg/redis"
)

// Deps are the collaborators the HTTP surface is built from. Redis is
// optional; without it login rate limiting and idempotent replays are off.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            controllers.Pinger
	Redis         *redis.Client
	Gatherer      prometheus.Gatherer
	HTTPMetrics   *metrics.HTTPMetrics
	Auth          auth.Service
	Submissions   submissions.Service
	Entities      entities.Service
	Users         users.Service
	Notifications notifications.Service
	Comments      comments.Service
	Queue         validationqueue.Service
	Admins        admins.Service
}

var entityKinds = []entities.Kind{
	entities.KindImages,
	entities.KindVideos,
	entities.KindAudio,
	entities.KindDocuments,
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var (
		cache        controllers.Pinger
		replayStore  middleware.IdempotencyStore
		loginLimiter = middleware.AuthRateLimit(middleware.AuthRateLimitPolicy{}, nil, logg)
	)
	if d.Redis != nil {
		cache = d.Redis
		replayStore = d.Redis
		loginLimiter = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		), d.Redis, logg)
	}
	idempotent := middleware.Idempotency(replayStore, middleware.DefaultIdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, cache))
	})
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/submissions", func(r chi.Router) {
			r.With(idempotent).Post("/", controllers.CreateSubmission(d.Submissions, logg))
			r.Get("/", controllers.ListSubmissions(d.Submissions, logg))
			r.Get("/{id}", controllers.GetSubmission(d.Submissions, logg))
			r.Delete("/{id}", controllers.DeleteSubmission(d.Submissions, logg))
			r.Get("/{id}/comments", controllers.ListComments(d.Comments, logg))
			r.Post("/{id}/comments", controllers.CreateComment(d.Comments, logg))
		})
		r.Delete("/comments/{commentId}", controllers.DeleteComment(d.Comments, logg))

		for _, kind := range entityKinds {
			r.Route("/"+string(kind), func(r chi.Router) {
				r.Get("/", controllers.ListEntities(d.Entities, kind, logg))
				r.Get("/by-submission/{submissionId}", controllers.GetEntityBySubmission(d.Entities, kind, logg))
				r.Delete("/{id}", controllers.DeleteEntity(d.Entities, kind, logg))
			})
		}

		r.Post("/users", controllers.CreateUser(d.Users, logg))
		r.Get("/users/{email}", controllers.GetUserByEmail(d.Users, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(d.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(d.Notifications, logg))
			r.Post("/{id}/read", controllers.MarkNotificationRead(d.Notifications, logg))
			r.Delete("/{id}", controllers.DeleteNotification(d.Notifications, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimiter).Post("/auth/login", controllers.AdminAuthLogin(d.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWT, logg))
				r.Use(middleware.RequireAdminRole(logg, enums.AdminRoleSuperAdmin, enums.AdminRoleValidatorAdmin))

				r.Get("/submissions", controllers.AdminListSubmissions(d.Submissions, logg))
				r.Get("/submissions/stats", controllers.AdminSubmissionStats(d.Submissions, logg))
				r.Patch("/submissions/{id}/status", controllers.AdminUpdateSubmissionStatus(d.Submissions, d.Admins, logg))
				r.Get("/submissions/{id}/history", controllers.AdminSubmissionHistory(d.Submissions, logg))

				r.Get("/queue", controllers.AdminListQueue(d.Queue, logg))
				r.With(idempotent).Post("/queue", controllers.AdminEnqueue(d.Queue, d.Admins, logg))
				r.Post("/queue/dequeue", controllers.AdminDequeue(d.Queue, d.Admins, logg))
				r.Patch("/queue/{submissionId}", controllers.AdminUpdateQueueStatus(d.Queue, d.Admins, logg))

				r.Get("/users", controllers.AdminListUsers(d.Users, logg))
				r.Delete("/users/{id}", controllers.AdminDeleteUser(d.Users, d.Admins, logg))
				r.Post("/notifications", controllers.AdminSendNotification(d.Notifications, d.Admins, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminRole(logg, enums.AdminRoleSuperAdmin))
					r.Get("/admins", controllers.AdminListAdmins(d.Admins, logg))
					r.Post("/admins", controllers.AdminCreateAdmin(d.Admins, logg))
					r.Patch("/admins/{id}/status", controllers.AdminUpdateAdminStatus(d.Admins, logg))
					r.Delete("/admins/{id}", controllers.AdminDeleteAdmin(d.Admins, logg))
					r.Get("/actions", controllers.AdminListActions(d.Admins, logg))
				})
			})
		})
	})

	return r
}

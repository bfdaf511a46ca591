package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/config"
	"github.com/rfalmeida/facility-control/internal/handlers"
	"github.com/rfalmeida/facility-control/internal/middleware"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// newRouter assembles repositories, the access core, handlers, and the
// middleware chain into the API's http.Handler.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	resourceRepo := repo.NewResourceRepo(db)
	areaRepo := repo.NewAreaRepo(db)
	accessLogRepo := repo.NewAccessLogRepo(db)
	activityRepo := repo.NewActivityRepo(db)
	statsRepo := repo.NewStatsRepo(db)

	auditor := access.NewAuditor(activityRepo, nil)
	recorder := access.NewRecorder(accessLogRepo, auditor)

	secret := []byte(cfg.JWTSecret)
	authH := &handlers.AuthHandler{Users: userRepo, Secret: secret, ExpireHours: cfg.JWTExpireHours}
	userH := &handlers.UserHandler{Repo: userRepo, Auditor: auditor}
	resourceH := &handlers.ResourceHandler{Repo: resourceRepo, Auditor: auditor}
	areaH := &handlers.AreaHandler{Repo: areaRepo, Auditor: auditor}
	accessH := &handlers.AccessHandler{Users: userRepo, Areas: areaRepo, Recorder: recorder}
	statsH := &handlers.StatsHandler{Stats: statsRepo, Activities: activityRepo, Logs: accessLogRepo, Areas: areaRepo}
	activityH := &handlers.ActivityHandler{Repo: activityRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.LoginRateLimiter()
	r.With(loginLimiter.Middleware).Post("/v1/auth/login", authH.Login)

	// Everything below requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT(secret))

		r.Get("/v1/me", authH.Me)
		r.Get("/v1/dashboard", statsH.Dashboard)
		r.Get("/v1/security", statsH.Security)

		r.Route("/v1/resources", func(r chi.Router) {
			r.Post("/", resourceH.CreateResource)
			r.Get("/", resourceH.ListResources)
			r.Get("/{id}", resourceH.GetResource)
			r.Put("/{id}", resourceH.UpdateResource)
			r.Delete("/{id}", resourceH.DeleteResource)
		})

		r.Route("/v1/areas", func(r chi.Router) {
			r.Get("/", areaH.ListAreas)
			r.Get("/{id}", areaH.GetArea)
			r.Post("/{id}/access", accessH.RequestEntry)
			r.Post("/{id}/exit", accessH.RecordExit)

			// Managing areas is a security function: admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/", areaH.CreateArea)
				r.Put("/{id}", areaH.UpdateArea)
				r.Delete("/{id}", areaH.DeleteArea)
			})
		})

		r.Get("/v1/access-logs", accessH.ListAccessLogs)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Post("/v1/users", userH.CreateUser)
			r.Get("/v1/users", userH.ListUsers)
			r.Get("/v1/users/{id}", userH.GetUser)
			r.Put("/v1/users/{id}/role", userH.UpdateUserRole)
			r.Get("/v1/activities", activityH.ListActivities)
		})
	})

	return r
}

package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Timesheet TimesheetHandler
	Punch     PunchHandler
	Comment   CommentHandler
	Event     EventHandler
	Audit     AuditHandler
	// PontoProxy serves /api/ponto/*. Nil leaves the passthrough unmounted.
	PontoProxy http.Handler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource cannot set headers, the stream authenticates with a query token
		r.Get("/timesheet/stream", h.Timesheet.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/days", h.Timesheet.ListDays)
				r.Get("/stream-token", h.Timesheet.StreamToken)
			})

			r.Route("/punches", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Punch.CreateManualPunch)
					r.Post("/ignore", h.Punch.ToggleIgnored)
					r.Put("/{id}", h.Punch.UpdateManualPunch)
					r.Delete("/{id}", h.Punch.DeleteManualPunch)
				})
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", h.Comment.ListComments)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Comment.AddComment)
					r.Delete("/{id}", h.Comment.DeleteComment)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.Event.ListEvents)
				r.Get("/{id}", h.Event.GetEvent)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Event.CreateEvent)
					r.Put("/{id}", h.Event.UpdateEvent)
					r.Delete("/{id}", h.Event.DeleteEvent)
				})
			})

			r.With(middleware.AdminOnly).Get("/audit", h.Audit.ListAudit)
		})
	})

	if h.PontoProxy != nil {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Handle("/api/ponto/*", h.PontoProxy)
		})
	}

	return r
}

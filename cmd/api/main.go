package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/ponto"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/redisbus"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/audit"
	commentService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/comment"
	eventService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/event"
	punchService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/punch"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
)

// repositories is the override store backend selected by APP_STORE
type repositories struct {
	tx      punch.Transactor
	manual  punch.ManualPunchRepository
	ignored punch.IgnoredPunchRepository
	comment comment.CommentRepository
	event   event.EventRepository
	audit   audit.AuditRepository
	close   func()
}

func openStore(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.App.Store == "memory" {
		slog.Warn("Using in-memory override store, data is lost on restart")
		return repositories{
			tx:      memory.NewTransactor(),
			manual:  memory.NewManualPunchRepository(),
			ignored: memory.NewIgnoredPunchRepository(),
			comment: memory.NewCommentRepository(),
			event:   memory.NewEventRepository(),
			audit:   memory.NewAuditRepository(),
			close:   func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		tx:      postgresql.NewTransactor(db),
		manual:  postgresql.NewManualPunchRepository(db),
		ignored: postgresql.NewIgnoredPunchRepository(db),
		comment: postgresql.NewCommentRepository(db),
		event:   postgresql.NewEventRepository(db),
		audit:   postgresql.NewAuditRepository(db),
		close:   db.Close,
	}, nil
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer repos.close()

	loc := cfg.Location()
	pontoClient := ponto.NewClient(cfg.Ponto, loc)
	pontoProxy, err := ponto.NewProxy(cfg.Ponto.BaseURL, "/api/ponto")
	if err != nil {
		log.Fatal("Failed to initialize vendor proxy: ", err)
	}

	hub := sse.NewHub()
	dayCache := cache.NewDayCache[timesheet.ListDaysResponse](cfg.Cache.Size, cfg.Cache.TTL)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	auditSvc := auditService.NewAuditService(repos.audit)
	timesheetSvc := timesheetService.NewTimesheetService(
		pontoClient,
		pontoClient,
		repos.manual,
		repos.ignored,
		repos.event,
		repos.comment,
		dayCache,
		hub,
		loc,
	)

	if cfg.Redis.Address != "" {
		bus, err := redisbus.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize invalidation bus: ", err)
		}
		defer bus.Close()
		timesheetSvc.UseBus(bus)
		go bus.Listen(ctx, timesheetSvc.ApplyInvalidation)
		slog.Info("Day invalidations routed through redis", "address", cfg.Redis.Address)
	}

	punchSvc := punchService.NewPunchService(repos.tx, repos.manual, repos.ignored, auditSvc, timesheetSvc)
	eventSvc := eventService.NewEventService(repos.event, auditSvc, timesheetSvc)
	commentSvc := commentService.NewCommentService(repos.comment, auditSvc, timesheetSvc)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Timesheet:  appHTTP.NewTimesheetHandler(timesheetSvc, JWTService, hub),
		Punch:      appHTTP.NewPunchHandler(punchSvc),
		Comment:    appHTTP.NewCommentHandler(commentSvc),
		Event:      appHTTP.NewEventHandler(eventSvc),
		Audit:      appHTTP.NewAuditHandler(auditSvc),
		PontoProxy: pontoProxy,
	})

	if cfg.Cache.PrefetchInterval > 0 {
		scheduler := cron.NewScheduler(ctx)
		if err := cron.NewTimesheetJobs(timesheetSvc, cfg.Cache.PrefetchInterval).RegisterJobs(scheduler); err != nil {
			log.Fatal("Failed to register cron jobs: ", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end on shutdown so open SSE streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.App.Store, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}

// Package app assembles repositories, services and handlers from config.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/database"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/handler"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/mail"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/middleware"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/payment"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/queue"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/repository"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/router"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

// Services is the service layer built over one database.
type Services struct {
	Accounts      *service.AccountService
	Profiles      *service.ProfileService
	Jobs          *service.JobService
	Applications  *service.ApplicationService
	Queries       *service.QueryService
	Subscriptions *service.SubscriptionService
	Training      *service.TrainingService
	Chatbot       *service.ChatbotService
	Dashboards    *service.DashboardService
}

// App owns the long lived resources of the server process.
type App struct {
	Config    config.Config
	Echo      *echo.Echo
	DB        *sql.DB
	Redis     *redis.Client
	Files     storage.Storage
	Publisher queue.Publisher
	Mailer    mail.Sender
	Services  Services
}

// Open connects to MySQL, creating the tables first when DB_MIGRATE is set.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

// NewServices wires repositories and services. pub may be nil, in which
// case no events are published.
func NewServices(cfg config.Config, db *sql.DB, files storage.Storage, pub service.EventPublisher, logger echo.Logger) Services {
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	profiles := repository.NewProfileRepo(db)
	subs := repository.NewSubscriptionRepo(db)
	jobs := repository.NewJobRepo(db)
	saved := repository.NewSavedJobRepo(db)
	apps := repository.NewApplicationRepo(db)
	queries := repository.NewQueryRepo(db)
	courses := repository.NewCourseRepo(db)
	enrollments := repository.NewEnrollmentRepo(db)
	faqs := repository.NewFAQRepo(db)
	payments := repository.NewPaymentRepo(db)

	prov := service.NewProvisioner(profiles, subs)
	subscriptions := service.NewSubscriptionService(prov, payment.NewStubGateway(payments), cfg.ProPlanDays, cfg.ProPlanPriceCents)
	settings := service.TokenSettings{
		JWTSecret:      cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	}
	return Services{
		Accounts:      service.NewAccountService(users, tokens, prov, settings, pub, logger),
		Profiles:      service.NewProfileService(prov, files),
		Jobs:          service.NewJobService(jobs, saved, apps, prov),
		Applications:  service.NewApplicationService(jobs, apps, users, prov, files, pub, logger),
		Queries:       service.NewQueryService(jobs, queries),
		Subscriptions: subscriptions,
		Training:      service.NewTrainingService(courses, enrollments, subscriptions, files),
		Chatbot:       service.NewChatbotService(faqs, users, subscriptions),
		Dashboards:    service.NewDashboardService(prov, jobs, saved, apps, queries, enrollments, subscriptions),
	}
}

// New builds the HTTP server and everything behind it. Redis is optional:
// without it rate limiting and response caching are skipped.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.Validator = handler.NewValidator()

	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	files, err := storage.New(cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	pub, err := queue.NewPublisher(cfg.Events)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	rdb := config.NewRedisClient()
	if rdb == nil {
		e.Logger.Warn("redis unavailable: rate limiting and caching disabled")
	}

	a := &App{
		Config:    cfg,
		Echo:      e,
		DB:        db,
		Redis:     rdb,
		Files:     files,
		Publisher: pub,
		Mailer:    mail.New(cfg.Mail),
		Services:  NewServices(cfg, db, files, pub, e.Logger),
	}
	a.mount()
	return a, nil
}

func (a *App) mount() {
	e := a.Echo
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Errorf("%s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(echomw.BodyLimit("6M"))
	e.Use(echomw.CORS())

	if a.Config.Storage.Driver == "" || a.Config.Storage.Driver == "local" {
		e.Static(a.Config.Storage.BaseURL, a.Config.Storage.BasePath)
	}

	cacheCfg := config.LoadCacheConfig()
	s := a.Services
	h := handler.Handlers{
		Health:       handler.NewHealthHandler(a.DB, a.Redis),
		Auth:         handler.NewAuthHandler(s.Accounts),
		Profile:      handler.NewProfileHandler(s.Profiles),
		Job:          handler.NewJobHandler(s.Jobs),
		Application:  handler.NewApplicationHandler(s.Applications),
		Query:        handler.NewQueryHandler(s.Queries),
		Subscription: handler.NewSubscriptionHandler(s.Subscriptions),
		Training:     handler.NewTrainingHandler(s.Training),
		Chatbot:      handler.NewChatbotHandler(s.Chatbot, a.Redis, cacheCfg.Prefix),
		Dashboard:    handler.NewDashboardHandler(s.Dashboards),
	}
	router.RegisterRoutes(e, h, router.Options{
		JWTSecret:    a.Config.JWTSecret,
		AuthLimit:    middleware.NewTokenBucket(config.LoadRateLimitConfig("auth"), a.Redis),
		ChatbotLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig("chatbot"), a.Redis),
		FAQCache:     middleware.NewRedisCache(cacheCfg, a.Redis),
	})
}

// StartNotifier consumes domain events and mails the affected users until
// ctx is cancelled. It does nothing unless EVENT_CONSUME is set.
func (a *App) StartNotifier(ctx context.Context) {
	if !a.Config.Events.Consume {
		return
	}
	go queue.StartConsumer(ctx, a.Config.Events, queue.NewNotifier(a.Mailer), a.Echo.Logger)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		addr := ":" + a.Config.Port
		a.Echo.Logger.Infof("listening on %s (env=%s)", addr, a.Config.Env)
		errc <- a.Echo.Start(addr)
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

// Close releases the resources opened by New.
func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	_ = a.DB.Close()
}

func logLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"meteocal/core/cache"
	"meteocal/core/config"
	"meteocal/core/database"
	"meteocal/core/logger"
	"meteocal/core/middleware"
	"meteocal/core/queue"
	"meteocal/modules/alert"
	"meteocal/modules/auth"
	"meteocal/modules/calendar"
	"meteocal/modules/event"
	eventRepository "meteocal/modules/event/repository"
	"meteocal/modules/invitation"
	"meteocal/modules/notification"
	"meteocal/modules/weather"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 15 * time.Second

// Run loads configuration, wires every module and serves HTTP until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(cfg.App.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer redisCache.Close()

	var (
		queueClient *queue.Client
		queueWorker *queue.Worker
	)
	if cfg.Queue.Enabled {
		queueCfg := queue.Config{
			RedisAddr:     cfg.Redis.Addr,
			RedisPassword: cfg.Redis.Password,
			RedisDB:       cfg.Redis.DB,
			Concurrency:   cfg.Queue.Concurrency,
		}
		queueClient = queue.NewClient(queueCfg)
		defer queueClient.Close()
		queueWorker = queue.NewWorker(queueCfg)
	}

	e := echo.New()
	e.HideBanner = true
	mw := middleware.NewMiddleware(redisCache)
	e.Use(echoMiddleware.Recover())
	e.Use(mw.RequestID())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	loc := cfg.Location()

	authService := auth.Init(api, db, redisCache, mw)
	calendarRepo := calendar.Init(api, db, mw, loc)
	notificationService := notification.Init(api, db, mw)

	eventRepo := eventRepository.NewEventRepository(db)
	weatherModule, err := weather.Init(cfg, redisCache, eventRepo, queueClient, queueWorker)
	if err != nil {
		return fmt.Errorf("init weather: %w", err)
	}

	event.Init(api, db, mw, event.Deps{
		Events:        eventRepo,
		Calendars:     calendarRepo,
		Notifications: notificationService,
		Forecasts:     weatherModule.Dispatcher,
	})
	invitation.Init(api, db, mw, notificationService, eventRepo, calendarRepo)
	alertService := alert.Init(api, db, mw, eventRepo, calendarRepo, notificationService, loc)
	authService.AddLoginHook(alertService)

	if queueWorker != nil {
		if err := queueWorker.Start(); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
		defer queueWorker.Shutdown()
	}
	if weatherModule.Scheduler != nil {
		weatherModule.Scheduler.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "addr", addr, "env", cfg.App.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Server:Shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if weatherModule.Scheduler != nil {
		weatherModule.Scheduler.Stop(shutdownCtx)
	}
	return e.Shutdown(shutdownCtx)
}

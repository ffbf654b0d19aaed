package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/app"
	"github.com/Freeeeeet/tutoring_office/internal/config"
	"github.com/Freeeeeet/tutoring_office/internal/controller"
	"github.com/Freeeeeet/tutoring_office/internal/lock"
	"github.com/Freeeeeet/tutoring_office/internal/metrics"
	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/repository"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	reconcileLockKey = "tutoring_office:reconcile"
	reconcileLockTTL = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutoring office",
		zap.String("environment", cfg.Environment),
		zap.String("location", cfg.Location.String()),
		zap.Int("operators", len(cfg.OperatorIDs)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}

	logger.Info("👋 Shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := repository.NewPool(ctx, cfg.GetDBDSN(), cfg.Location)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	if cfg.MigrationsEnabled {
		migrator, err := app.NewMigrator(pool, logger)
		if err != nil {
			return err
		}
		err = migrator.Run(ctx)
		migrator.Close()
		if err != nil {
			return err
		}
	}

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry, "tutoring_office")

	readiness := map[string]app.Pinger{
		"postgres": pool.Ping,
	}

	// Блокировка сверки: локальная всегда, Redis при нескольких инстансах
	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		locker = lock.Chain{lock.NewLocal(), lock.NewRedis(rdb, reconcileLockKey, reconcileLockTTL)}
		readiness["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		logger.Info("Reconcile lock uses redis", zap.String("addr", cfg.RedisAddr))
	}

	// Репозитории
	tx := repository.NewTransactor(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	// Сервисы
	bookingService := service.NewBookingService(tx, bookingRepo, teacherRepo, studentRepo, cfg.Location, m, logger)
	scheduleService := service.NewScheduleService(bookingRepo, teacherRepo,
		model.EarningsPolicy{CountAdvanceAbsences: cfg.CountAdvanceAbsences}, cfg.Location, logger)
	directoryService := service.NewDirectoryService(teacherRepo, studentRepo, logger)
	reconcileService := service.NewReconcileService(bookingRepo, teacherRepo, studentRepo, locker, cfg.Location, m, logger)

	// Telegram
	botInstance, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram error", zap.Error(err))
	}))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(
		botInstance,
		bookingService,
		scheduleService,
		directoryService,
		reconcileService,
		cfg.IsOperator,
		cfg.Location,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы консоли
		logger.Warn("Bot commands were not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(reconcileService, cfg.Location, cfg.ReconcileHour, cfg.ReconcileCheckInterval, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return botController.Start(gctx)
	})
	g.Go(func() error {
		scheduler.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return app.RunOpsServer(gctx, cfg.MetricsAddr, app.NewOpsHandler(registry, readiness), logger)
	})

	return g.Wait()
}

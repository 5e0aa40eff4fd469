// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/studyplanner/internal/admin"
	"github.com/carterperez-dev/studyplanner/internal/auth"
	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/dashboard"
	"github.com/carterperez-dev/studyplanner/internal/health"
	"github.com/carterperez-dev/studyplanner/internal/middleware"
	"github.com/carterperez-dev/studyplanner/internal/migrations"
	"github.com/carterperez-dev/studyplanner/internal/notify"
	"github.com/carterperez-dev/studyplanner/internal/performance"
	"github.com/carterperez-dev/studyplanner/internal/schedule"
	"github.com/carterperez-dev/studyplanner/internal/server"
	"github.com/carterperez-dev/studyplanner/internal/subject"
	"github.com/carterperez-dev/studyplanner/internal/task"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"driver", db.Driver(),
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, db.DB.DB, db.Dialect()); err != nil {
			return err
		}
		version, _ := migrations.Version(ctx, db.DB.DB, db.Dialect())
		logger.Info("migrations applied", "version", version)
	}

	var (
		redis       *core.Redis
		redisClient *goredis.Client
		locker      core.Locker = core.NewLocalLocker()
	)
	if cfg.Redis.Enabled() {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		redisClient = redis.Client
		locker = redis.Locker()
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	} else {
		logger.Warn("redis not configured, using in-process locks and rate limits")
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	notifier, err := notify.New(cfg.Mail, logger)
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(notifier, logger, cfg.Mail.SendTimeout)
	logger.Info("notifier initialized", "provider", cfg.Mail.Provider)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redisClient)
	authHandler := auth.NewHandler(authSvc, cfg.Session)

	aggregator := performance.NewAggregator()
	performanceSvc := performance.NewService(db, aggregator)
	subjectSvc := subject.NewService(db)
	taskSvc := task.NewService(
		db,
		aggregator,
		userSvc,
		dispatcher,
		cfg.Mail,
		logger,
	)
	scheduleSvc := schedule.NewService(db, aggregator, locker, taskSvc)
	dashboardSvc := dashboard.NewService(userSvc, subjectSvc, taskSvc, performanceSvc)

	checks := []health.Check{{Name: "database", Checker: db}}
	adminCfg := admin.HandlerConfig{
		DBStats:    db.Stats,
		DBPing:     db.Ping,
		Repository: admin.NewRepository(db.DB),
	}
	if redis != nil {
		checks = append(checks, health.Check{Name: "redis", Checker: redis})
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	}
	healthHandler := health.NewHandler(checks...)
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc, cfg.Session.CookieName)
	userLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByUserAndEndpoint,
		FailOpen: true,
	})
	authedLimited := func(next http.Handler) http.Handler {
		return authenticator(userLimiter.Handler(next))
	}
	adminOnly := middleware.RequireAdmin

	authHandler.RegisterRoutes(router, authenticator)
	router.Post("/users", authHandler.Register)

	userHandler.RegisterRoutes(router, authenticator)
	userHandler.RegisterAdminRoutes(router, authenticator, adminOnly)
	adminHandler.RegisterRoutes(router, authenticator, adminOnly)

	dashboard.NewHandler(dashboardSvc).RegisterRoutes(router, authedLimited)
	subject.NewHandler(subjectSvc).RegisterRoutes(router, authedLimited)
	task.NewHandler(taskSvc).RegisterRoutes(router, authedLimited)
	schedule.NewHandler(scheduleSvc).RegisterRoutes(router, authedLimited)
	performance.NewHandler(performanceSvc).RegisterRoutes(router, authedLimited)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("notification drain error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if redis != nil {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

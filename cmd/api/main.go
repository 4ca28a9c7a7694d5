package main

import (
	"context"
	"log"
	"time"

	"nutrition-admin/config"
	"nutrition-admin/internal/handler"
	"nutrition-admin/internal/ratelimit"
	"nutrition-admin/internal/redis"
	"nutrition-admin/internal/repository"
	"nutrition-admin/internal/server"
	"nutrition-admin/internal/services"
	"nutrition-admin/pkg/database"
	"nutrition-admin/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	appLogger := logger.NewWithOptions(logger.Options{
		Mode:       mode,
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	logger.SetGlobalLogger(appLogger)
	defer appLogger.Sync()

	ctx := context.Background()

	db, err := database.Open(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if !cfg.AuthEnabled() {
		appLogger.Warnf("BOT_TOKEN is not set, API authentication is disabled")
	}

	var (
		userCache  services.UserCache
		statsCache services.StatsCache
		limiter    ratelimit.Limiter
	)

	readiness := []handler.ReadinessCheck{func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	}}

	if cfg.RedisEnabled() {
		redisClient, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		cache := redis.NewCacheStore(redisClient, cfg.CacheTTL)
		userCache = cache
		statsCache = cache
		readiness = append(readiness, cache.Ping)
		if cfg.RateLimitRPS > 0 {
			limiter = redis.NewRateLimiter(redisClient, redis.RateLimitConfig{
				Limit:  cfg.RateLimitRPS * 60,
				Window: time.Minute,
			})
		}
		appLogger.Infof("Redis cache enabled at %s", cfg.RedisAddr)
	} else if cfg.RateLimitRPS > 0 {
		limiter = ratelimit.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	eventRepo := repository.NewEventRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	userService := services.NewUserService(userRepo, userCache, appLogger)
	chatService := services.NewChatService(chatRepo)
	eventService := services.NewEventService(eventRepo)
	statsService := services.NewStatsService(statsRepo, statsCache, appLogger)
	authService := services.NewAuthService(cfg)

	handlers := &server.Handlers{
		Health: handler.NewHealthHandler(appLogger, readiness...),
		User:   handler.NewUserHandler(userService, appLogger),
		Chat:   handler.NewChatHandler(chatService, appLogger),
		Event:  handler.NewEventHandler(eventService, appLogger),
		Stats:  handler.NewStatsHandler(statsService, appLogger),
	}

	srv := server.New(cfg, appLogger)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		appLogger.Errorf("Server exited with error: %s", err)
	}
}

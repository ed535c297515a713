package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskify/backend/internal/cache"
	"taskify/backend/internal/config"
	"taskify/backend/internal/database"
	"taskify/backend/internal/handlers"
	"taskify/backend/internal/middleware"
	"taskify/backend/internal/monitoring"
	"taskify/backend/internal/services"
	"taskify/backend/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisCache.Close()

	authService := services.NewAuthService(cfg.Auth)
	registerService := services.NewRegisterService(cfg.Auth.BCryptCost)
	taskService := services.NewCachedTaskService(services.NewTaskService(), redisCache)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()

	checker := monitoring.NewHealthChecker()
	checker.Register("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	checker.Register("redis", redisCache.Ping)

	router := setupRouter(cfg, db, authService, registerService, taskService, rateLimiter, checker)

	jobWorker := worker.NewWorker(worker.WorkerConfig{
		RedisClient:  redisCache.Client(),
		Queues:       cfg.Worker.Queues,
		PollInterval: cfg.Worker.PollInterval,
	})
	jobWorker.RegisterHandler(worker.JobTypeTokenCleanup, func(ctx context.Context, job *worker.Job) error {
		purged, err := authService.PurgeExpiredTokens(db)
		if err != nil {
			return err
		}
		if purged > 0 {
			log.Printf("purged %d expired refresh tokens", purged)
		}
		return nil
	})
	jobWorker.RegisterHandler(worker.JobTypeCacheFlush, func(ctx context.Context, job *worker.Job) error {
		return redisCache.DeletePattern("owner_tasks:*")
	})
	jobWorker.Start(cfg.Worker.Concurrency)
	defer jobWorker.Stop()

	scheduler := worker.NewScheduler(jobWorker, cfg.Worker.Queues[0])
	scheduler.Start([]worker.ScheduledJob{
		{Type: worker.JobTypeTokenCleanup, Interval: time.Hour},
		{Type: worker.JobTypeCacheFlush, Interval: 6 * time.Hour},
	})
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	db *gorm.DB,
	authService services.AuthService,
	registerService services.RegisterService,
	taskService services.TaskService,
	rateLimiter *middleware.RateLimiter,
	checker *monitoring.HealthChecker,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(rateLimiter.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.TokenHeader)
	router.Use(cors.New(corsConfig))

	authHandler := handlers.NewAuthHandler(db, authService)
	registerHandler := handlers.NewRegisterHandler(db, registerService, authService)
	taskHandler := handlers.NewTaskHandler(db, taskService)

	router.GET("/health", monitoring.HealthHandler(checker))
	router.GET("/metrics", monitoring.MetricsHandler())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", registerHandler.Registration)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	return router
}

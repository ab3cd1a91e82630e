package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marina-server/internal/config"
	"marina-server/internal/handler"
	"marina-server/internal/service"
	"marina-server/pkg/migration"
	"marina-server/shared/database"
	"marina-server/shared/interfaces"
	sharedLogger "marina-server/shared/logger"
	"marina-server/shared/messaging"
	sharedMiddleware "marina-server/shared/middleware"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	maxConnectRetries = 20
	connectRetryDelay = 3 * time.Second
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger, err := sharedLogger.New(sharedLogger.Config{
		Env:         cfg.Env,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		ServiceName: "marina-server",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Configuration loaded", zap.String("env", cfg.Env), zap.String("logLevel", cfg.LogLevel))

	// --- External Connections ---
	mongoClient, err := setupMongo(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			zap.L().Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	if cfg.MigrateOnStart {
		migrator := migration.NewMigrator(migration.Config{
			MongoURI:       cfg.MongoURI,
			DatabaseName:   cfg.MongoDatabase,
			MigrationsPath: database.MigrationsPath,
			MigrationsFS:   database.MigrationsFS,
		})
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := migrator.Up(migrateCtx)
		cancel()
		if err != nil {
			zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
		}
		zap.L().Info("Database migrations applied")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setupRedis(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	} else {
		zap.L().Warn("REDIS_ADDR not set, rate limits and token revocations are kept in memory")
	}

	var publisher interfaces.EventPublisher = messaging.NoopEventPublisher{}
	if cfg.RabbitMQURL != "" {
		mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, logger)
		if err != nil {
			zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConn.Close()

		rabbitPublisher, err := messaging.NewRabbitMQEventPublisher(mqConn, cfg.EventsExchange, logger)
		if err != nil {
			zap.L().Fatal("Failed to create event publisher", zap.Error(err))
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	} else {
		zap.L().Info("RABBITMQ_URL not set, domain events are not published")
	}

	// --- Dependency Injection ---
	userRepo := database.NewMongoUserRepository(db, logger)
	catwayRepo := database.NewMongoCatwayRepository(db, logger)
	reservationRepo := database.NewMongoReservationRepository(db, logger)

	var (
		tokenRepo      interfaces.TokenRepository
		rateLimitStore rateli.Store
	)
	if redisClient != nil {
		tokenRepo = database.NewRedisTokenRepository(redisClient, logger)
		rateLimitStore = rateli.RedisStore(&rateli.RedisOptions{
			RedisClient: redisClient,
			Rate:        cfg.LoginRateWindow,
			Limit:       cfg.LoginRateLimit,
		})
	} else {
		tokenRepo = database.NewMemoryTokenRepository()
		rateLimitStore = rateli.InMemoryStore(&rateli.InMemoryOptions{
			Rate:  cfg.LoginRateWindow,
			Limit: cfg.LoginRateLimit,
		})
	}

	authSvc := service.NewAuthService(userRepo, tokenRepo, cfg, logger)
	userSvc := service.NewUserService(userRepo, publisher, cfg, logger)
	catwaySvc := service.NewCatwayService(catwayRepo, publisher, logger)
	reservationSvc := service.NewReservationService(reservationRepo, catwayRepo, publisher, cfg, logger)

	if cfg.BootstrapAdminEmail != "" {
		bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := userSvc.EnsureBootstrapUser(bootstrapCtx, service.CreateUserInput{
			Username: cfg.BootstrapAdminUsername,
			Email:    cfg.BootstrapAdminEmail,
			Password: cfg.BootstrapAdminPassword,
		})
		cancel()
		if err != nil {
			zap.L().Fatal("Failed to create bootstrap account", zap.Error(err))
		}
		if created {
			zap.L().Info("Bootstrap account created", zap.String("email", cfg.BootstrapAdminEmail))
		}
	}

	marinaHandler := handler.NewMarinaHandler(authSvc, userSvc, catwaySvc, reservationSvc)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	if err := router.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		zap.L().Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		zap.L().Info("CORS_ALLOWED_ORIGINS not set, allowing all origins")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", sharedMiddleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	marinaHandler.RegisterRoutes(router, handler.NewLoginRateLimiter(rateLimitStore))

	// Registered after the routes so /metrics does not shadow them.
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupMongo connects to MongoDB, retrying while the database starts up.
func setupMongo(cfg *config.Config) (*mongo.Client, error) {
	var lastErr error
	zap.L().Info("Attempting to connect to MongoDB",
		zap.String("database", cfg.MongoDatabase),
		zap.Int("max_retries", maxConnectRetries),
	)
	for i := 0; i < maxConnectRetries; i++ {
		attempt := i + 1
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := database.Connect(ctx, cfg.MongoURI)
		cancel()
		if err == nil {
			zap.L().Info("Successfully connected to MongoDB", zap.Int("attempt", attempt))
			return client, nil
		}
		lastErr = err
		zap.L().Warn("MongoDB connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxConnectRetries),
			zap.Error(err),
		)
		if i < maxConnectRetries-1 {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", maxConnectRetries, lastErr)
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	zap.L().Info("Attempting to connect to Redis", zap.String("address", redisOpts.Addr), zap.Int("db", redisOpts.DB))

	var lastErr error
	for i := 0; i < maxConnectRetries; i++ {
		attempt := i + 1
		client := redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()
		if err == nil {
			zap.L().Info("Successfully connected to Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = err
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxConnectRetries),
			zap.Error(err),
		)
		if i < maxConnectRetries-1 {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxConnectRetries, lastErr)
}

func connectRabbitMQ(rawURL string, logger *zap.Logger) (*amqp091.Connection, error) {
	var err error
	logger.Info("Attempting to connect to RabbitMQ",
		zap.String("url", redactURL(rawURL)),
		zap.Int("max_retries", maxConnectRetries),
	)
	for i := 0; i < maxConnectRetries; i++ {
		attempt := i + 1
		var conn *amqp091.Connection
		conn, err = amqp091.Dial(rawURL)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ", zap.Int("attempt", attempt))
			go func() {
				notifyClose := make(chan *amqp091.Error, 1)
				conn.NotifyClose(notifyClose)
				if closeErr := <-notifyClose; closeErr != nil {
					logger.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				} else {
					logger.Info("RabbitMQ connection closed gracefully.")
				}
			}()
			return conn, nil
		}
		logger.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxConnectRetries),
			zap.Error(err),
		)
		if i < maxConnectRetries-1 {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxConnectRetries, err)
}

// redactURL hides credentials before a connection string is logged.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url"
	}
	return u.Redacted()
}

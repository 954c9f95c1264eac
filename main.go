package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"printstudio/handlers"
	"printstudio/internal/config"
	"printstudio/internal/database"
	"printstudio/internal/drafts"
	"printstudio/internal/inventory"
	"printstudio/internal/sessions"
	"printstudio/internal/settings"
	"printstudio/internal/uploads"
	"printstudio/pkg/logger"
	"printstudio/pkg/metrics"
	"printstudio/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Uploads.Endpoint != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so sessions and the rate limiter can use it.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			redisClient = client
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Session store: Redis when available, in-process memory otherwise
	// (memory sessions do not survive restarts).
	var sessionRepo sessions.Repository
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "session:", cfg.Session.TTL)
	} else {
		logger.Warn("Redis unavailable; sessions held in process memory")
		sessionRepo = sessions.NewMemoryRepository()
	}
	sessionSvc := sessions.NewService(sessionRepo, cfg.Session.Secret, cfg.Session.TTL)

	// Settings store: Mongo with retry/backoff to tolerate startup races;
	// memory store keeps the site serving its bundled defaults when Mongo
	// is down.
	var settingsRepo settings.Repository
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		}
	}
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(ctx) }()
		col := mongoClient.Database(cfg.MongoDB.Database).Collection("settings")
		settingsRepo = settings.NewMongoRepository(col)
		logger.Infof("Using MongoDB for settings storage: %s", cfg.MongoDB.Database)
	} else {
		logger.Warn("MongoDB unavailable; settings held in process memory")
		settingsRepo = settings.NewMemoryRepository()
	}

	settingsSvc := settings.NewService(settingsRepo, cfg.Admin.DefaultPassword)
	if err := settingsSvc.EnsureDefaults(ctx); err != nil {
		logger.Fatalf("failed to seed default settings: %v", err)
	}
	draftMgr := drafts.NewManager(settingsSvc)

	// Upload sink: MinIO when configured, memory otherwise.
	var sink uploads.Sink
	if cfg.Uploads.Endpoint != "" {
		ms, err := uploads.NewMinIOSink(cfg.Uploads)
		if err != nil {
			logger.Warnf("failed to initialize MinIO sink: %v", err)
		} else {
			sink = ms
			logger.Infof("Using MinIO for uploads: %s/%s", cfg.Uploads.Endpoint, cfg.Uploads.Bucket)
		}
	}
	if sink == nil {
		logger.Warn("object store unavailable; uploads held in process memory")
		sink = uploads.NewMemorySink()
	}

	// Login throttling: Redis-backed fixed window when configured for it,
	// per-key token bucket otherwise.
	var loginLimiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			loginLimiter = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			loginLimiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	h := handlers.New(settingsSvc, sessionSvc, draftMgr, sink, cfg.Session)
	h.Register(r, loginLimiter)

	// bundled printer illustrations referenced by the inventory
	r.StaticFS("/static/printers", http.FS(inventory.AssetFS()))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness reports per-dependency state; memory fallbacks count as
	// degraded but ready
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongodb": mongoClient != nil || cfg.MongoDB.URI == "",
			"redis":   redisClient != nil || cfg.Redis.Host == "",
		}
		ready := true
		for _, ok := range deps {
			if !ok {
				ready = false
			}
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting printstudio on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

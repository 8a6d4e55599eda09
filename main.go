package main

import (
	"context"
	"net/http"

	"burger-house-api/config"
	"burger-house-api/events"
	"burger-house-api/handlers"
	"burger-house-api/logger"
	"burger-house-api/metrics"
	"burger-house-api/middleware"
	"burger-house-api/routes"
	"burger-house-api/service"
	"burger-house-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "burger-house-api",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.GinMode)

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	kv, err := store.NewSQLiteKV(db)
	if err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("path", cfg.Database.Path))

	hub := events.NewHub()
	m := metrics.New(cfg.Metrics.Prefix)
	defer m.Watch(hub)()
	defer hub.SubscribeAll(func(topic string, payload interface{}) {
		log.Debug("event", zap.String("topic", topic), zap.Any("payload", payload))
	})()

	svc, err := service.Open(context.Background(), kv,
		service.WithLogger(log.Named("data")),
		service.WithPublisher(hub),
		service.WithBcryptCost(cfg.Auth.BcryptCost),
		service.WithResetOnCorrupt(cfg.Database.ResetOnCorrupt),
	)
	if err != nil {
		log.Fatal("Failed to load store", zap.Error(err))
	}

	tokens := middleware.NewTokens(cfg.JWT.Secret, cfg.JWT.Expiration)
	h := handlers.New(svc, tokens, m, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(log), middleware.AccessLog(log), m.Middleware(), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍔 Welcome to the Burger House API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "staff", "admin"},
		})
	})

	routes.SetupRoutes(r, h, tokens, m)

	log.Info("Server running", zap.String("addr", "http://localhost:"+cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

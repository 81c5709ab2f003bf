package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reef_backend/internal/config"
	"reef_backend/internal/db"
	httpServer "reef_backend/internal/http"
	"reef_backend/internal/http/handlers"
	"reef_backend/internal/logger"
	"reef_backend/internal/repository"
	"reef_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFormat == "json")
	log := logger.Get()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// без redis работаем, просто без кеша сессий
		log.Warn("redis недоступен, кеш сессий отключен", "error", err)
		rdb = nil
	}

	store := repository.NewPgStore(dbPool)
	audit := service.NewAuditService(store)
	sessions := service.NewSessionService(store, rdb, audit, cfg.JWTSecret, cfg.JWTTTLMin)
	balance := service.NewBalanceService(store, audit)
	recharges := service.NewRechargeService(store, audit)
	withdrawals := service.NewWithdrawalService(store, audit)
	funds := service.NewFundService(store, audit)

	r := gin.Default()

	// CORS: фронт и бэкенд живут на разных доменах
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.New(store, sessions, balance, recharges, withdrawals, funds)
	httpServer.RegisterRoutes(r, h, sessions, cfg.UploadsDir)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

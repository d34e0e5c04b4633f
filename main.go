package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/config"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/realtime"
	"github.com/yeremiapane/restaurant-booking/router"
	"github.com/yeremiapane/restaurant-booking/utils"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	if cfg.Auth.JWTSecret == "" {
		utils.InfoLogger.Warn("JWT_SECRET not set, using development secret")
	}
	utils.InitJWT(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	opts := router.Options{
		CORSAllowedOrigin: cfg.Server.CORSAllowedOrigin,
		RateLimit:         rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst:         cfg.Server.RateLimitBurst,
		AuthRatePerMinute: cfg.Server.AuthRatePerMinute,
		TrustedProxies:    cfg.Server.TrustedProxies,
		Hub:               realtime.NewHub(),
	}

	var kafkaPub *events.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPub = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		opts.Events = kafkaPub
		utils.InfoLogger.Printf("Publishing change events to kafka topic %s", cfg.Kafka.Topic)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRouter(db, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	utils.InfoLogger.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			utils.ErrorLogger.Printf("Kafka writer close: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cutconnect/internal/core/cache"
	"cutconnect/internal/core/config"
	"cutconnect/internal/core/database"
	"cutconnect/internal/core/logger"
	"cutconnect/internal/core/server"
	"cutconnect/internal/repo"
	"cutconnect/internal/service"
	"cutconnect/internal/transport/http/handler"
	"cutconnect/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	// store: an unknown driver is fatal, a missing or unusable mongo config
	// only disables the API routes
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	st, ready, err := database.Connect(openCtx, cfg.Database, log)
	cancelOpen()
	if err != nil {
		log.Fatal("database open", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	var prober handler.Prober
	if ready {
		prober = st
		log.Info("database ready",
			zap.String("driver", cfg.Database.Driver),
			zap.String("database", cfg.Database.Name),
		)
	}

	// list cache is optional; an unreachable redis only costs a warning
	var lists *repo.ListCache
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, list reads fall through to the store",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancelPing()
		defer c.Close()
		lists = repo.NewListCache(c, time.Duration(cfg.Redis.TTLSec)*time.Second, log)
	}

	svc := service.NewBookingService(
		repo.NewBarberRepo(st, lists),
		repo.NewAppointmentRepo(st, lists),
		log,
	)

	reg := &router.Registry{}
	reg.Register(
		handler.NewSystemHandler(cfg.App.Name, prober, handler.DiagSettings{
			DatabaseURLSet: cfg.Database.URL != "",
			DatabaseName:   cfg.Database.Name,
		}, log),
		handler.NewBarberHandler(svc, log),
		handler.NewAppointmentHandler(svc, log),
	)

	if len(cfg.CORS.AllowOrigins) == 0 {
		log.Warn("CORS allows every origin with credentials; set cors.allow_origins to restrict")
	}
	r := router.NewAPIEngine(log, cfg, reg)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r, log,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("cutconnect api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("diagnostics", baseURL+"/test"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("cutconnect api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := st.Close(ctx); err != nil {
		log.Warn("store close", zap.Error(err))
	}
	log.Info("cutconnect api stopped gracefully")
}

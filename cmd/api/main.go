package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ElTrompa/ProyectoSP32/config"
	"github.com/ElTrompa/ProyectoSP32/internal/logger"
	"github.com/ElTrompa/ProyectoSP32/internal/routes"
	"github.com/ElTrompa/ProyectoSP32/internal/upstream"
)

func main() {
	// 1. Config and logger
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.AppEnv, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid timezone", zap.Error(err))
	}

	// 2. Snapshot store
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("database ready", zap.String("driver", cfg.DBDriver))

	// 3. Routes
	app := routes.NewApp(&routes.Deps{
		Cfg:      cfg,
		DB:       db,
		Upstream: upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, loc),
		Log:      log,
		Loc:      loc,
	})

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port), zap.String("upstream", cfg.UpstreamURL))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server exited")
}

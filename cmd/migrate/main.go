package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ElTrompa/ProyectoSP32/config"
	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/database"
	"github.com/ElTrompa/ProyectoSP32/internal/logger"
	"github.com/ElTrompa/ProyectoSP32/internal/repository"
	"github.com/ElTrompa/ProyectoSP32/internal/upstream"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

func main() {
	seed := flag.Bool("seed", false, "refresh every worker once to fill the snapshot store")
	days := flag.Int("days", 7, "window used by -seed (0 = all)")
	parallel := flag.Int("parallel", 4, "concurrent refreshes used by -seed")
	flag.Parse()

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

	// 1. Connect and migrate
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration complete", zap.String("driver", cfg.DBDriver))

	if !*seed {
		return
	}

	// 2. Optional snapshot seed from the ESP32 API
	loc, _ := cfg.Location()
	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, loc)
	dash := usecase.NewDashboardUsecase(client, repository.NewSnapshotRepository(db), repository.NewClockAuditRepository(db), log, loc)
	users := usecase.NewUserUsecase(client, log, cfg.JWTSecret, cfg.JWTTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	res, err := database.SeedSnapshots(ctx, users, dash, attendance.LastDays(*days), *parallel, log)
	if err != nil {
		log.Fatal("snapshot seed failed", zap.Error(err))
	}
	if len(res.Failed) > 0 {
		log.Warn("some workers could not be seeded", zap.Strings("usernames", res.Failed))
	}
}

package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"classscheduler/internal/cp"
	"classscheduler/internal/schedule"
	"classscheduler/internal/server"
	"classscheduler/internal/store"
	"classscheduler/pkg/config"
	"classscheduler/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zlog.Sync()

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		zlog.Fatal("cannot open dataset store", zap.Error(err))
	}

	enumerator := schedule.NewEnumerator()
	optimizer := schedule.NewOptimizer(cp.NewGophersatSolver())

	handler := server.NewHandler(cfg, zlog, st, enumerator, optimizer)
	router := handler.Router()

	zlog.Info("class scheduler listening", zap.Int("port", cfg.Port))
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

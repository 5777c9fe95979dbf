package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/feedback-collector/backend/config"
	"github.com/feedback-collector/backend/internal/database"
	"github.com/feedback-collector/backend/internal/logger"
	"github.com/feedback-collector/backend/internal/server"
)

func main() {
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	srv := server.New(cfg, db, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalw("server error", "error", err)
		}
	case sig := <-quit:
		log.Infow("received signal, shutting down", "signal", sig)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Errorw("server shutdown error", "error", err)
	}
	log.Info("server stopped")
}

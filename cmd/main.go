package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/eventstay/config"
	"github.com/farellandr/eventstay/internal/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Fatal("Error loading .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	log := config.InitLogger(cfg)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Server failed to start")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("Server stopped unexpectedly")
		}
		return
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Server is shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exited")
}

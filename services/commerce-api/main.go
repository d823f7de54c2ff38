package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/commerceapi"
	"github.com/vikas-mobiles/be/config"
	"github.com/vikas-mobiles/be/logging"
)

func main() {
	cfg := config.LoadCommerceAPIConfig()
	logger := logging.New(cfg.LogLevel)
	logging.SetGinMode(cfg.LogLevel)
	log := logger.WithField("service", "commerce-api")

	log.WithFields(logrus.Fields{
		"port":         cfg.Port,
		"upload_dir":   cfg.UploadDir,
		"failure_rate": cfg.FailureRate,
	}).Info("starting commerce api")

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("failed to create upload directory")
	}

	handler := commerceapi.NewHandler(commerceapi.NewStore(), cfg.UploadDir, log.WithField("component", "handler"))
	faults := commerceapi.NewFaultInjector(cfg.FailureRate, 0)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           commerceapi.NewRouter(handler, faults, log.WithField("component", "http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.WithError(err).Error("server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("commerce api shut down gracefully")
}

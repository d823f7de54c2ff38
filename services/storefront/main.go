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

	"github.com/vikas-mobiles/be/admin"
	"github.com/vikas-mobiles/be/checkout"
	"github.com/vikas-mobiles/be/clients"
	"github.com/vikas-mobiles/be/config"
	"github.com/vikas-mobiles/be/handlers"
	"github.com/vikas-mobiles/be/logging"
	"github.com/vikas-mobiles/be/rabbitmq"
	"github.com/vikas-mobiles/be/session"
)

func main() {
	cfg := config.LoadStorefrontConfig()
	logger := logging.New(cfg.LogLevel)
	logging.SetGinMode(cfg.LogLevel)
	log := logger.WithField("service", "storefront")

	log.WithFields(logrus.Fields{"port": cfg.Port, "commerce_api": cfg.CommerceAPIURL}).Info("starting storefront")

	commerce, err := clients.NewCommerceClient(cfg.CommerceAPIURL, cfg.AssetBaseURL, cfg.RequestTimeout)
	if err != nil {
		log.WithError(err).Fatal("invalid commerce api configuration")
	}

	var notifier checkout.Notifier
	if cfg.EventsEnabled() {
		pool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize, log.WithField("component", "rabbitmq"))
		if err != nil {
			log.WithError(err).Fatal("failed to create RabbitMQ channel pool")
		}
		defer pool.Close()
		notifier = rabbitmq.NewPublisher(pool, cfg.RabbitMQQueue, log.WithField("component", "publisher"))
	} else {
		log.Info("RABBITMQ_URL not set, order events disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewRegistry(cfg.SessionTTL, log.WithField("component", "sessions"))
	go sessions.Run(ctx, cfg.SweepInterval)

	products := admin.NewProductBoard(commerce, log.WithField("component", "products"))
	orders := admin.NewOrderBoard(commerce, log.WithField("component", "orders"))
	svc := checkout.NewService(commerce, notifier, log.WithField("component", "checkout"))

	router := handlers.Router{
		Sessions:      sessions,
		SessionMaxAge: int(cfg.SessionTTL.Seconds()),
		Catalog:       handlers.NewCatalogHandler(products, commerce),
		Cart:          handlers.NewCartHandler(products, commerce, log.WithField("component", "cart")),
		Checkout:      handlers.NewCheckoutHandler(svc, products, log.WithField("component", "checkout")),
		Admin:         handlers.NewAdminHandler(products, orders, commerce),
		Log:           log.WithField("component", "http"),
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("received shutdown signal, stopping server")
	case err := <-serverErr:
		log.WithError(err).Error("server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("storefront shut down gracefully")
}

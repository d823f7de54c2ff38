package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/config"
	"github.com/vikas-mobiles/be/consumer"
	"github.com/vikas-mobiles/be/logging"
	"github.com/vikas-mobiles/be/rabbitmq"
)

func main() {
	cfg := config.LoadConsumerConfig()
	logger := logging.New(cfg.LogLevel)
	log := logger.WithField("service", "order-consumer")

	log.WithFields(logrus.Fields{"workers": cfg.NumWorkers, "queue": cfg.RabbitMQQueue}).Info("starting order consumer")

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Fatal("failed to open a channel")
	}
	if err := rabbitmq.DeclareQueue(ch, cfg.RabbitMQQueue); err != nil {
		log.WithError(err).Fatal("failed to declare queue")
	}
	ch.Close()

	tracker := consumer.NewOrderTracker()

	var wg sync.WaitGroup
	workers := make([]*consumer.Worker, cfg.NumWorkers)
	for i := 0; i < cfg.NumWorkers; i++ {
		worker, err := consumer.NewWorker(i+1, conn, cfg.RabbitMQQueue, tracker, log)
		if err != nil {
			log.WithError(err).Fatalf("failed to create worker %d", i+1)
		}
		workers[i] = worker

		wg.Add(1)
		go worker.Start(&wg)
	}
	log.Infof("all %d workers started", cfg.NumWorkers)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("received shutdown signal, stopping workers")

	for _, w := range workers {
		w.Stop()
	}
	conn.Close()
	wg.Wait()

	tracker.PrintSummary(os.Stdout)
	log.Info("order consumer shut down gracefully")
}

// Package consumer drains the order events queue with a pool of workers.
package consumer

import (
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/models"
)

type Worker struct {
	workerID     int
	channel      *amqp.Channel
	queueName    string
	orderTracker *OrderTracker
	log          *logrus.Entry
}

func NewWorker(workerID int, conn *amqp.Connection, queueName string, tracker *OrderTracker, log *logrus.Entry) (*Worker, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for worker %d: %w", workerID, err)
	}

	// one unacked message per worker
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set QoS for worker %d: %w", workerID, err)
	}

	return newWorker(workerID, ch, queueName, tracker, log), nil
}

func newWorker(workerID int, ch *amqp.Channel, queueName string, tracker *OrderTracker, log *logrus.Entry) *Worker {
	return &Worker{
		workerID:     workerID,
		channel:      ch,
		queueName:    queueName,
		orderTracker: tracker,
		log:          log.WithField("worker", workerID),
	}
}

// Start consumes until the channel or its connection is closed.
func (w *Worker) Start(wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.channel.Close()

	msgs, err := w.channel.Consume(
		w.queueName,                          // queue
		fmt.Sprintf("worker-%d", w.workerID), // consumer tag
		false,                                // auto-ack
		false,                                // exclusive
		false,                                // no-local
		false,                                // no-wait
		nil,                                  // args
	)
	if err != nil {
		w.log.WithError(err).Error("failed to register consumer")
		return
	}

	w.log.Info("worker started")
	for msg := range msgs {
		w.processMessage(msg)
	}
	w.log.Info("worker stopped")
}

func (w *Worker) processMessage(msg amqp.Delivery) {
	var event models.OrderPlacedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil || event.OrderID == "" {
		w.log.WithError(err).Warn("rejecting malformed order event")
		// malformed messages are never requeued
		if err := msg.Nack(false, false); err != nil {
			w.log.WithError(err).Error("failed to nack message")
		}
		return
	}

	log := w.log.WithFields(logrus.Fields{"order_id": event.OrderID, "event_id": event.EventID})
	if !w.orderTracker.RecordOrder(event) {
		log.Debug("skipping redelivered event")
	}

	if err := msg.Ack(false); err != nil {
		log.WithError(err).Error("failed to acknowledge message")
		return
	}
	log.Debug("processed order event")
}

func (w *Worker) Stop() {
	if w.channel != nil {
		w.channel.Close()
	}
}

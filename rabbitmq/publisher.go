// Package rabbitmq publishes order events to a durable RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/models"
)

const publishTimeout = 5 * time.Second

type Publisher struct {
	pool      *ChannelPool
	queueName string
	log       *logrus.Entry
}

func NewPublisher(pool *ChannelPool, queueName string, log *logrus.Entry) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
		log:       log,
	}
}

// PublishOrderPlaced sends event to the order events queue.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	msg, err := NewOrderPlacedMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	ch, err := p.pool.GetChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		msg)
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.log.WithFields(logrus.Fields{"order_id": event.OrderID, "event_id": event.EventID}).Info("published order event")
	return nil
}

// NewOrderPlacedMessage encodes event as a persistent JSON message.
func NewOrderPlacedMessage(event models.OrderPlacedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    event.EventID,
		Timestamp:    event.PlacedAt,
		Type:         "order.placed",
		Body:         body,
	}, nil
}

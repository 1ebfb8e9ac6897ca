// Package queue_publisher publishes domain events to RabbitMQ. Publishing
// is best-effort: errors are logged and returned so callers can ignore
// them without interrupting the request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	q "github.com/rakhadjo/nusatrip/internal/queue"
)

// Publisher emits booking events over AMQP. The zero value is not usable;
// construct with New.
type Publisher struct {
	url string
}

// New returns a Publisher targeting the broker from the environment.
func New() *Publisher {
	return &Publisher{url: q.BrokerURL()}
}

// BookingCreated publishes a BookingCreatedEvent to the booking.created
// queue. Messages are marked persistent. The function never panics; any
// failure is logged and returned.
func (p *Publisher) BookingCreated(ctx context.Context, event q.BookingCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer ch.Close()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare("booking.created", true, false, false, false, nil); err != nil {
		logrus.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", "booking.created", false, false, pub); err != nil {
		logrus.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

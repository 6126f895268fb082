// Package service holds the verification gate and the activity event
// publisher it notifies.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/jcpao/court-directory/internal/queue"
)

// AMQPPublisher publishes ActivityEvents to RabbitMQ.  Each publish dials
// its own connection.
type AMQPPublisher struct {
	URL string
}

// defaultDialTimeout applies when ctx carries no deadline.
const defaultDialTimeout = 2 * time.Second

// PublishActivity publishes ev to the directory.activity queue.  Any
// error is returned so the caller can log and ignore it.  Messages are
// marked as persistent.
func (p AMQPPublisher) PublishActivity(ctx context.Context, ev q.ActivityEvent) error {
	timeout := defaultDialTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	if timeout <= 0 {
		return fmt.Errorf("rabbitmq dial: %w", context.DeadlineExceeded)
	}
	// DefaultDial also bounds the AMQP handshake, not only the TCP connect.
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Declare is idempotent; the consumer declares the same queue.
	if _, err := ch.QueueDeclare(
		q.ActivityQueueName, // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ActivityQueueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

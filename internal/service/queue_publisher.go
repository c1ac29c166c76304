// Package queue_publisher provides functions to publish domain events to
// RabbitMQ. Errors are logged and returned to allow callers to ignore
// failures without interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/eventsense/eventsense-api/internal/queue"
)

// Queue names shared with the consumer. Both are declared durable so
// messages survive broker restarts.
const (
	BookingConfirmedQueue = "booking.confirmed"
	EventApprovedQueue    = "event.approved"
)

// PublishBookingConfirmed publishes a BookingConfirmedEvent to the
// booking.confirmed queue. The function never panics; any error is logged
// and returned so the caller can choose to ignore it.
func PublishBookingConfirmed(ctx context.Context, url string, event q.BookingConfirmedEvent) error {
	return publish(ctx, url, BookingConfirmedQueue, event)
}

// PublishEventApproved publishes an EventApprovedEvent to the
// event.approved queue.
func PublishEventApproved(ctx context.Context, url string, event q.EventApprovedEvent) error {
	return publish(ctx, url, EventApprovedQueue, event)
}

func publish(ctx context.Context, url, queueName string, event any) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent).
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
		return err
	}
	return nil
}

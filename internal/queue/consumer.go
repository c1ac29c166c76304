package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eventsense/eventsense-api/internal/mailer"
)

const (
	bookingQueueName  = "booking.confirmed"
	approvalQueueName = "event.approved"
)

// StartNotificationConsumer connects to RabbitMQ, declares the
// booking.confirmed and event.approved queues (durable), and starts
// consuming messages. Each message becomes an outbound email through the
// given Mailer. The function runs a reconnect loop with exponential
// backoff and keeps running indefinitely; processing errors are logged and
// the offending message rejected without requeue so the consumer never
// spins on a poison message.
func StartNotificationConsumer(url string, m *mailer.Mailer) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("notify-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, m); err != nil {
			log.Printf("notify-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, m *mailer.Mailer) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("notify-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{bookingQueueName, approvalQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	bookings, err := ch.Consume(bookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", bookingQueueName, err)
	}
	approvals, err := ch.Consume(approvalQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", approvalQueueName, err)
	}

	for {
		select {
		case d, ok := <-bookings:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			settle(d, handleBookingConfirmed(m, d.Body))
		case d, ok := <-approvals:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			settle(d, handleEventApproved(m, d.Body))
		}
	}
}

// settle acks the delivery on success, otherwise logs and rejects without
// requeue to avoid tight redelivery loops.
func settle(d amqp.Delivery, err error) {
	if err != nil {
		log.Printf("notify-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func handleBookingConfirmed(m *mailer.Mailer, body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	err := m.SendBookingConfirmation(mailer.BookingEmail{
		To:          ev.HolderEmail,
		HolderName:  ev.HolderName,
		Reference:   ev.Reference,
		EventTitle:  ev.EventTitle,
		EventDate:   ev.EventDate,
		EventTime:   ev.EventTime,
		Venue:       ev.Venue,
		Seats:       ev.Seats,
		TotalAmount: ev.TotalAmount,
		BookingID:   ev.BookingID,
	}, ev.QRCode)
	if errors.Is(err, mailer.ErrDisabled) {
		log.Printf("notify-consumer: email disabled, booking %s confirmed for %s", ev.Reference, ev.HolderEmail)
		return nil
	}
	return err
}

func handleEventApproved(m *mailer.Mailer, body []byte) error {
	var ev EventApprovedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	err := m.SendEventApproved(mailer.ApprovalEmail{
		To:            ev.OrganizerEmail,
		OrganizerName: ev.OrganizerName,
		EventTitle:    ev.EventTitle,
	})
	if errors.Is(err, mailer.ErrDisabled) {
		log.Printf("notify-consumer: email disabled, event %q approved for %s", ev.EventTitle, ev.OrganizerEmail)
		return nil
	}
	return err
}

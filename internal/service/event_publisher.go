package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/hallbook/hallbook-api/internal/model"
	"github.com/hallbook/hallbook-api/internal/queue"
)

// EventPublisher publishes domain events after a record has been stored.
// Callers treat failures as non-fatal.
type EventPublisher interface {
	BookingCreated(ctx context.Context, b *model.Booking) error
	PaymentRecorded(ctx context.Context, p *model.PaymentTransaction) error
}

// AMQPPublisher publishes events to RabbitMQ.  It dials per publish, with a
// short connect timeout, so that a broker outage never blocks startup and
// only briefly delays a request; every error is logged and returned.
type AMQPPublisher struct {
	url string
	log zerolog.Logger
}

func NewAMQPPublisher(url string, log zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: log.With().Str("component", "rabbitmq").Logger()}
}

// BookingCreated publishes a BookingCreatedEvent for b.
func (p *AMQPPublisher) BookingCreated(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, queue.BookingCreatedQueue, NewBookingCreatedEvent(b))
}

// PaymentRecorded publishes a PaymentRecordedEvent for tx.
func (p *AMQPPublisher) PaymentRecorded(ctx context.Context, tx *model.PaymentTransaction) error {
	return p.publish(ctx, queue.PaymentRecordedQueue, NewPaymentRecordedEvent(tx))
}

func (p *AMQPPublisher) publish(ctx context.Context, queueName string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("marshal event failed")
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(2 * time.Second),
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn().Err(err).Str("queue", queueName).Msg("queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn().Err(err).Str("queue", queueName).Msg("publish failed")
		return err
	}
	return nil
}

// NopPublisher discards events.  Used when EVENTS_ENABLED=false.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) error { return nil }
func (NopPublisher) PaymentRecorded(context.Context, *model.PaymentTransaction) error { return nil }

// NewBookingCreatedEvent builds the wire payload for a stored booking.
func NewBookingCreatedEvent(b *model.Booking) queue.BookingCreatedEvent {
	return queue.BookingCreatedEvent{
		EventID:     uuid.NewString(),
		BookingID:   b.ID,
		UserID:      b.UserID,
		HallID:      b.HallID,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewPaymentRecordedEvent builds the wire payload for a stored transaction.
func NewPaymentRecordedEvent(tx *model.PaymentTransaction) queue.PaymentRecordedEvent {
	ev := queue.PaymentRecordedEvent{
		EventID:   uuid.NewString(),
		PaymentID: tx.ID,
		BookingID: tx.BookingID,
		Amount:    tx.Amount,
		Status:    tx.Status,
		CreatedAt: tx.CreatedAt.UTC().Format(time.RFC3339),
	}
	if tx.TransactionID != nil {
		ev.TransactionID = *tx.TransactionID
	}
	return ev
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Consumer listens on the booking and payment queues and appends one line
// per event to <dir>/booking.log.
type Consumer struct {
	url string
	dir string
	log zerolog.Logger
}

func NewConsumer(url, dir string, log zerolog.Logger) *Consumer {
	return &Consumer{url: url, dir: dir, log: log.With().Str("component", "booking-consumer").Logger()}
}

// Run dials the broker and consumes until ctx is cancelled, reconnecting
// with exponential backoff (capped at 30s) whenever the connection drops.
// It returns ctx.Err() on shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("dial broker failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

// consumeLoop returns when ctx ends, the connection or channel closes, or a
// delivery stream stops.  Its forwarders exit with it.
func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("set QoS failed")
	}

	queues := []string{BookingCreatedQueue, PaymentRecordedQueue}
	deliveries := make(chan amqp.Delivery)
	ended := make(chan string, len(queues))
	for _, name := range queues {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.ConsumeWithContext(loopCtx, name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go forward(loopCtx, name, msgs, deliveries, ended)
	}

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-connClosed:
			return closeReason("connection", amqpErr)
		case amqpErr := <-chClosed:
			return closeReason("channel", amqpErr)
		case name := <-ended:
			return fmt.Errorf("deliveries on %s stopped", name)
		case d := <-deliveries:
			if err := c.HandleMessage(d.RoutingKey, d.Body); err != nil {
				c.log.Error().Err(err).Str("queue", d.RoutingKey).Msg("handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// forward copies src into dst until src closes or ctx ends, then reports
// name on ended.  ended must have room for every forwarder.
func forward(ctx context.Context, name string, src <-chan amqp.Delivery, dst chan<- amqp.Delivery, ended chan<- string) {
	defer func() { ended <- name }()
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-src:
			if !ok {
				return
			}
			select {
			case dst <- d:
			case <-ctx.Done():
				return
			}
		}
	}
}

func closeReason(what string, amqpErr *amqp.Error) error {
	if amqpErr == nil {
		return errors.New(what + " closed")
	}
	return fmt.Errorf("%s closed: %w", what, amqpErr)
}

// HandleMessage decodes one event by queue name and appends its audit line.
func (c *Consumer) HandleMessage(queue string, body []byte) error {
	var line string
	switch queue {
	case BookingCreatedQueue:
		var ev BookingCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Booking created | event_id=%s | booking_id=%d | user_id=%d | hall_id=%d | date=%s | time=%s-%s | total=%s\n",
			ev.CreatedAt, ev.EventID, ev.BookingID, ev.UserID, ev.HallID, ev.BookingDate, ev.StartTime, ev.EndTime, ev.TotalAmount)
	case PaymentRecordedQueue:
		var ev PaymentRecordedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Payment recorded | event_id=%s | payment_id=%d | booking_id=%d | amount=%s | status=%s | transaction_id=%q\n",
			ev.CreatedAt, ev.EventID, ev.PaymentID, ev.BookingID, ev.Amount, ev.Status, ev.TransactionID)
	default:
		return fmt.Errorf("unknown queue %q", queue)
	}
	return c.appendLine(line)
}

func (c *Consumer) appendLine(line string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.dir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.dir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

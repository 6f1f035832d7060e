// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into an audit log.
package queue

// Queue names.  Each event type gets its own durable queue on the default
// exchange; the routing key equals the queue name.
const (
	BookingCreatedQueue  = "booking.created"
	PaymentRecordedQueue = "payment.recorded"
)

// BookingCreatedEvent is published after a booking row is stored.  It
// carries enough for downstream consumers to log or build statistics
// without querying the primary database.
type BookingCreatedEvent struct {
	EventID     string `json:"event_id"`
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	HallID      uint64 `json:"hall_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TotalAmount string `json:"total_amount"`
	CreatedAt   string `json:"created_at"`
}

// PaymentRecordedEvent is published after a payment transaction row is
// stored.
type PaymentRecordedEvent struct {
	EventID       string `json:"event_id"`
	PaymentID     uint64 `json:"payment_id"`
	BookingID     uint64 `json:"booking_id"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}

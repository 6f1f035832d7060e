package model

import "time"

// Booking lifecycle states.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// Payment states tracked on the booking itself.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
	PaymentStatusFailed   = "FAILED"
)

// Booking records a user's request to use a hall for a time range on a
// single date.  No overlap with other bookings is checked; the record is
// stored as submitted.
//
// BookingDate is formatted YYYY-MM-DD and StartTime/EndTime HH:MM:SS, the
// same text MySQL returns for DATE and TIME columns.
type Booking struct {
	ID                 uint64    `json:"id"`
	UserID             uint64    `json:"user_id"`
	HallID             uint64    `json:"hall_id"`
	BookingDate        string    `json:"booking_date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	DurationHours      string    `json:"duration_hours"`
	TotalAmount        string    `json:"total_amount"`
	EventType          *string   `json:"event_type,omitempty"`
	GuestCount         *int      `json:"guest_count,omitempty"`
	SpecialRequests    *string   `json:"special_requests,omitempty"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"payment_status"`
	PaymentID          *string   `json:"payment_id,omitempty"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

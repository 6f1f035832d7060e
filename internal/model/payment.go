package model

import "time"

// Transaction states.
const (
	TransactionStatusPending  = "PENDING"
	TransactionStatusSuccess  = "SUCCESS"
	TransactionStatusFailed   = "FAILED"
	TransactionStatusRefunded = "REFUNDED"
)

// PaymentTransaction is a payment attempt recorded against a booking.  The
// gateway interaction itself happens elsewhere; this is only the record.
type PaymentTransaction struct {
	ID              uint64    `json:"id"`
	BookingID       uint64    `json:"booking_id"`
	Amount          string    `json:"amount"`
	PaymentMethod   *string   `json:"payment_method,omitempty"`
	TransactionID   *string   `json:"transaction_id,omitempty"`
	PaymentGateway  *string   `json:"payment_gateway,omitempty"`
	Status          string    `json:"status"`
	GatewayResponse *string   `json:"gateway_response,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

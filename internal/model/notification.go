package model

import "time"

// Notification categories.
const (
	NotificationTypeBooking = "BOOKING"
	NotificationTypePayment = "PAYMENT"
	NotificationTypeReview  = "REVIEW"
	NotificationTypeSystem  = "SYSTEM"
)

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

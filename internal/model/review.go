package model

import "time"

// Review is a rating left for a hall after a booking.  One review per
// booking.
type Review struct {
	ID         uint64    `json:"id"`
	BookingID  uint64    `json:"booking_id"`
	UserID     uint64    `json:"user_id"`
	HallID     uint64    `json:"hall_id"`
	Rating     int       `json:"rating"`
	ReviewText *string   `json:"review_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

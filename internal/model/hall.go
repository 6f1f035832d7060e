package model

import "time"

// Hall types accepted by the halls.hall_type column.
const (
	HallTypeBanquet    = "BANQUET"
	HallTypeConference = "CONFERENCE"
	HallTypeWedding    = "WEDDING"
	HallTypeParty      = "PARTY"
	HallTypeOther      = "OTHER"
)

// Hall review states.
const (
	HallStatusPending  = "PENDING"
	HallStatusApproved = "APPROVED"
	HallStatusRejected = "REJECTED"
)

// Hall represents a venue that can be booked by the hour.  Each hall
// belongs to an owner (a user).  Money and coordinates are decimal
// strings as returned by MySQL DECIMAL columns.
//
// Fields:
//
//	ID            – primary key identifier.
//	OwnerID       – user ID of the hall owner.
//	Name          – display name.
//	Description   – optional description of the hall.
//	Address, City – required location; State and Pincode are optional.
//	Latitude      – optional coordinates.
//	Capacity      – maximum number of guests.
//	PricePerHour  – hourly rate.
//	HallType      – one of the HallType* constants.
//	Facilities    – free-form text.
//	Status        – one of the HallStatus* constants.
//	IsActive      – whether the hall is listed.
//	Rating        – average review rating.
//	TotalBookings – booking counter.
type Hall struct {
	ID            uint64    `json:"id"`
	OwnerID       uint64    `json:"owner_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         *string   `json:"state,omitempty"`
	Pincode       *string   `json:"pincode,omitempty"`
	Latitude      *string   `json:"latitude,omitempty"`
	Longitude     *string   `json:"longitude,omitempty"`
	Capacity      int       `json:"capacity"`
	PricePerHour  string    `json:"price_per_hour"`
	HallType      string    `json:"hall_type"`
	Facilities    *string   `json:"facilities,omitempty"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	Rating        string    `json:"rating"`
	TotalBookings int       `json:"total_bookings"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

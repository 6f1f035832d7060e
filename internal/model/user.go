package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The record doubles as the stored credential: Email is the login
// identifier and PasswordHash is the bcrypt verifier.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique display handle.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt verifier; never serialized.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Username     string    `json:"username"`   // users.username
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}

// UserPreference stores the browsing preferences of a single user.  There is
// at most one row per user.  List-valued preferences are kept as
// comma-separated text.
type UserPreference struct {
	ID                   uint64    `json:"id"`
	UserID               uint64    `json:"user_id"`
	PreferredCities      *string   `json:"preferred_cities,omitempty"`
	PreferredHallTypes   *string   `json:"preferred_hall_types,omitempty"`
	BudgetMin            *string   `json:"budget_min,omitempty"`
	BudgetMax            *string   `json:"budget_max,omitempty"`
	PreferredCapacityMin *int      `json:"preferred_capacity_min,omitempty"`
	PreferredCapacityMax *int      `json:"preferred_capacity_max,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

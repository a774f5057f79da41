package model

import "time"

// Guest mirrors the `guests` table. IsActive flips to true when one of the
// guest's bookings is checked in.
type Guest struct {
	ID          uint64    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     *string   `json:"address,omitempty"`
	IDType      *string   `json:"id_type,omitempty"`
	IDNumber    *string   `json:"id_number,omitempty"`
	Preferences *string   `json:"preferences,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

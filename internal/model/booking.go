package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// validTransitions lists the states reachable from each state. Terminal
// states have no entry.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCheckedOut, BookingCancelled},
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in state s may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// HoldsRoom reports whether a booking in state s keeps its room occupied.
func (s BookingStatus) HoldsRoom() bool {
	return s.Valid() && !s.IsTerminal()
}

// Payment statuses the lifecycle reacts to. Any other string is stored as is.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Booking mirrors the `bookings` table. CheckOutDate is exclusive: the night
// of check-out is not billed.
type Booking struct {
	ID              uint64          `json:"id"`
	GuestID         uint64          `json:"guest_id"`
	RoomID          uint64          `json:"room_id"`
	CheckInDate     Date            `json:"check_in_date"`
	CheckOutDate    Date            `json:"check_out_date"`
	Status          BookingStatus   `json:"status"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	SpecialRequests *string         `json:"special_requests,omitempty"`
	PaymentStatus   string          `json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Nights returns the number of billed nights.
func (b Booking) Nights() int { return b.CheckInDate.DaysUntil(b.CheckOutDate) }

// Package queue carries booking events over RabbitMQ: the payload, a
// publisher used by the booking service and a consumer that appends each
// event to an audit log.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-manager/internal/model"
)

// EventType names what happened to a booking.
type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventBookingPaid          EventType = "booking.paid"
	EventBookingDeleted       EventType = "booking.deleted"
)

// BookingEvent is self-contained so consumers never need to query the
// primary database. Money is sent as a decimal string.
type BookingEvent struct {
	EventID        string    `json:"event_id"`
	Type           EventType `json:"type"`
	BookingID      uint64    `json:"booking_id"`
	GuestID        uint64    `json:"guest_id"`
	RoomID         uint64    `json:"room_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	PaymentStatus  string    `json:"payment_status"`
	CheckIn        string    `json:"check_in_date"`
	CheckOut       string    `json:"check_out_date"`
	TotalPrice     string    `json:"total_price"`
	OccurredAt     string    `json:"occurred_at"`
}

// NewBookingEvent snapshots b under a fresh event id.
func NewBookingEvent(typ EventType, b model.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		EventID:       uuid.NewString(),
		Type:          typ,
		BookingID:     b.ID,
		GuestID:       b.GuestID,
		RoomID:        b.RoomID,
		Status:        string(b.Status),
		PaymentStatus: b.PaymentStatus,
		CheckIn:       b.CheckInDate.String(),
		CheckOut:      b.CheckOutDate.String(),
		TotalPrice:    b.TotalPrice.StringFixed(2),
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
}

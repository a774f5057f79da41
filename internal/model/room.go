package model

import "time"

// RoomType tags a room and every tariff priced for it.
type RoomType string

const (
	RoomTypeGuestHouse RoomType = "GUEST_HOUSE"
	RoomTypeFrame      RoomType = "FRAME"
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeGuestHouse, RoomTypeFrame:
		return true
	}
	return false
}

// Room mirrors the `rooms` table. IsAvailable is owned by the booking
// lifecycle and only changes when a booking that holds the room moves
// between states.
type Room struct {
	ID          uint64    `json:"id"`
	Number      string    `json:"room_number"`
	Type        RoomType  `json:"room_type"`
	Floor       int       `json:"floor"`
	Capacity    int       `json:"capacity"`
	IsAvailable bool      `json:"is_available"`
	Description *string   `json:"description,omitempty"`
	Amenities   *string   `json:"amenities,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

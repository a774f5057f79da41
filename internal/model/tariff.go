package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomTariff mirrors the `room_tariffs` table. Several tariffs may cover the
// same dates for a room type; MinNights separates the tiers. The validity
// window [StartDate, EndDate] is inclusive on both ends.
type RoomTariff struct {
	ID                   uint64              `json:"id"`
	RoomID               uint64              `json:"room_id"`
	RoomType             RoomType            `json:"room_type"`
	PricePerNight        decimal.Decimal     `json:"price_per_night"`
	WeekendPricePerNight decimal.NullDecimal `json:"weekend_price_per_night"`
	MinNights            int                 `json:"min_nights"`
	StartDate            Date                `json:"start_date"`
	EndDate              Date                `json:"end_date"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// Covers reports whether day falls inside the validity window.
func (t RoomTariff) Covers(day Date) bool {
	return t.StartDate.BeforeOrEqual(day) && day.BeforeOrEqual(t.EndDate)
}

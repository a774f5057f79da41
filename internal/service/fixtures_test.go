package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/model"
)

func june(day int) model.Date { return model.NewDate(2024, time.June, day) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func weekend(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

// shortStay and longStay are the two June tiers of the guest-house rooms.
func shortStay() model.RoomTariff {
	return model.RoomTariff{
		ID:                   1,
		RoomID:               5,
		RoomType:             model.RoomTypeGuestHouse,
		PricePerNight:        dec("100"),
		WeekendPricePerNight: weekend("130"),
		MinNights:            1,
		StartDate:            june(1),
		EndDate:              june(30),
	}
}

func longStay() model.RoomTariff {
	return model.RoomTariff{
		ID:                   2,
		RoomID:               5,
		RoomType:             model.RoomTypeGuestHouse,
		PricePerNight:        dec("80"),
		WeekendPricePerNight: weekend("100"),
		MinNights:            7,
		StartDate:            june(1),
		EndDate:              june(30),
	}
}

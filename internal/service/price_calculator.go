package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/model"
)

// NightPrice is the charge for one night of a stay.
type NightPrice struct {
	Date    model.Date      `json:"date"`
	Weekend bool            `json:"weekend"`
	Price   decimal.Decimal `json:"price"`
}

// CountNights returns the billed nights between checkIn and checkOut. The
// check-out night is not billed.
func CountNights(checkIn, checkOut model.Date) int {
	return checkIn.DaysUntil(checkOut)
}

func isWeekendNight(d model.Date) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// nightRate returns the tariff's rate for the night starting on d and
// whether the weekend rate applied.
func nightRate(t model.RoomTariff, d model.Date) (decimal.Decimal, bool) {
	if isWeekendNight(d) && t.WeekendPricePerNight.Valid {
		return t.WeekendPricePerNight.Decimal, true
	}
	return t.PricePerNight, false
}

// PriceBreakdown lists every night in [checkIn, checkOut) with its rate.
// Friday and Saturday nights use the weekend rate when the tariff has one.
func PriceBreakdown(t model.RoomTariff, checkIn, checkOut model.Date) []NightPrice {
	nights := make([]NightPrice, 0, max(CountNights(checkIn, checkOut), 0))
	for d := checkIn; d.Before(checkOut); d = d.AddDays(1) {
		price, weekend := nightRate(t, d)
		nights = append(nights, NightPrice{Date: d, Weekend: weekend, Price: price})
	}
	return nights
}

// ComputeTotal sums the nightly rates of the stay. The callers guarantee
// checkIn is before checkOut; an empty range totals zero.
func ComputeTotal(t model.RoomTariff, checkIn, checkOut model.Date) decimal.Decimal {
	total := decimal.Zero
	for d := checkIn; d.Before(checkOut); d = d.AddDays(1) {
		price, _ := nightRate(t, d)
		total = total.Add(price)
	}
	return total
}

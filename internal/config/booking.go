package config

import "strings"

// BookingConfig tunes the booking lifecycle.
type BookingConfig struct {
	// SameDayTurnover allows a stay to start on the check-out day of the
	// previous one. Off by default: touching stays are treated as overlapping.
	SameDayTurnover bool
	// PaymentMethod is stamped on the income recorded when a booking is paid.
	PaymentMethod string
	// MaxNights is the longest stay accepted by create, update and quote.
	MaxNights int
}

// DefaultMaxNights applies when BOOKING_MAX_NIGHTS is unset or not positive.
const DefaultMaxNights = 365

// LoadBookingConfig reads BOOKING_* variables, falling back to defaults.
func LoadBookingConfig() BookingConfig {
	method := strings.ToLower(strings.TrimSpace(envStr("BOOKING_PAYMENT_METHOD", "cash")))
	if method == "" {
		method = "cash"
	}
	maxNights := envInt("BOOKING_MAX_NIGHTS", DefaultMaxNights)
	if maxNights < 1 {
		maxNights = DefaultMaxNights
	}
	return BookingConfig{
		SameDayTurnover: envBool("BOOKING_SAME_DAY_TURNOVER", false),
		PaymentMethod:   method,
		MaxNights:       maxNights,
	}
}

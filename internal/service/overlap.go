package service

import "github.com/iliyamo/hotel-manager/internal/model"

// OverlapPolicy decides whether stays that touch on one date collide.
type OverlapPolicy struct {
	// SameDayTurnover lets a new stay begin on the day the previous one
	// checks out. When false, touching stays conflict.
	SameDayTurnover bool
}

// Overlaps reports whether [aIn, aOut] and [bIn, bOut] intersect under p.
// The test is symmetric in its two ranges.
func (p OverlapPolicy) Overlaps(aIn, aOut, bIn, bOut model.Date) bool {
	if p.SameDayTurnover {
		return aIn.Before(bOut) && aOut.After(bIn)
	}
	return aIn.BeforeOrEqual(bOut) && bIn.BeforeOrEqual(aOut)
}

// HasConflict reports whether a candidate stay collides with any existing
// booking that is not cancelled. The booking with id excludeID is skipped so
// a booking can be moved without clashing with itself; pass 0 to check all.
func (p OverlapPolicy) HasConflict(existing []model.Booking, checkIn, checkOut model.Date, excludeID uint64) bool {
	for _, b := range existing {
		if b.Status == model.BookingCancelled {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if p.Overlaps(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			return true
		}
	}
	return false
}

// Package service holds the booking engine: tariff selection, stay pricing,
// overlap detection and the booking lifecycle built on top of them.
package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/hotel-manager/internal/apperror"
	"github.com/iliyamo/hotel-manager/internal/model"
)

var (
	ErrRoomUnavailable  = apperror.New(apperror.KindConflict, "room is not available")
	ErrDateConflict     = apperror.New(apperror.KindConflict, "room is already booked for these dates")
	ErrInvalidDateRange = apperror.New(apperror.KindValidation, "check-out date must be after check-in date")
	ErrNoTariffForDate  = apperror.New(apperror.KindValidation, "no tariff found for this room type and date")
	ErrInvalidStatus    = apperror.New(apperror.KindValidation, "invalid booking status")
	ErrNotConfirmed     = apperror.New(apperror.KindInvalidTransition, "booking must be confirmed before check-in")
	ErrBookingClosed    = apperror.New(apperror.KindInvalidTransition, "dates of a checked-out or cancelled booking cannot change")

	// ErrNoTariffForDuration matches, via errors.Is, the error returned when
	// tariffs cover the check-in date but all of them need a longer stay.
	ErrNoTariffForDuration = errors.New("no tariff for stay length")
)

type durationError struct {
	nights int
}

func (e *durationError) Error() string {
	return fmt.Sprintf("no tariff found for %d nights", e.nights)
}

func (e *durationError) Is(target error) bool { return target == ErrNoTariffForDuration }

// Unwrap exposes the validation kind to apperror.
func (e *durationError) Unwrap() error {
	return apperror.New(apperror.KindValidation, e.Error())
}

// stayLengthError reports a stay longer than the configured maximum. It
// matches ErrInvalidDateRange so callers treat it as a bad range.
type stayLengthError struct {
	nights, max int
}

func (e *stayLengthError) Error() string {
	return fmt.Sprintf("stay of %d nights exceeds the maximum of %d", e.nights, e.max)
}

func (e *stayLengthError) Is(target error) bool { return target == ErrInvalidDateRange }

func (e *stayLengthError) Unwrap() error {
	return apperror.New(apperror.KindValidation, e.Error())
}

func errInvalidTransition(from, to model.BookingStatus) error {
	return apperror.New(apperror.KindInvalidTransition,
		fmt.Sprintf("cannot change booking status from %s to %s", from, to))
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/config"
	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/queue"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// TxRunner runs fn inside one database transaction. repository.Store is the
// production implementation.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx repository.BookingTx) error) error
}

// EventPublisher delivers booking events after a change commits.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// CreateBookingInput carries a new reservation request.
type CreateBookingInput struct {
	GuestID         uint64
	RoomID          uint64
	CheckIn         model.Date
	CheckOut        model.Date
	SpecialRequests *string
	PaymentStatus   string
}

// UpdateBookingInput carries a partial update; nil fields are left as is.
// TotalPrice is ignored when the dates change, since the stay is repriced.
type UpdateBookingInput struct {
	CheckIn         *model.Date
	CheckOut        *model.Date
	Status          *model.BookingStatus
	TotalPrice      *decimal.Decimal
	SpecialRequests *string
	PaymentStatus   *string
}

// Quote is the price of a prospective stay.
type Quote struct {
	RoomType model.RoomType   `json:"room_type"`
	CheckIn  model.Date       `json:"check_in_date"`
	CheckOut model.Date       `json:"check_out_date"`
	Nights   int              `json:"nights"`
	Tariff   model.RoomTariff `json:"tariff"`
	PerNight []NightPrice     `json:"per_night"`
	Total    decimal.Decimal  `json:"total_price"`
}

// BookingService owns the booking state machine. Every mutation runs in a
// single transaction that also flips room availability, guest activity and
// records payments.
type BookingService struct {
	store     TxRunner
	tariffs   TariffSource
	publisher EventPublisher
	policy    OverlapPolicy
	payMethod string
	maxNights int
	now       func() time.Time
}

// NewBookingService wires the lifecycle manager. publisher may be nil.
func NewBookingService(store TxRunner, tariffs TariffSource, publisher EventPublisher, cfg config.BookingConfig) *BookingService {
	maxNights := cfg.MaxNights
	if maxNights < 1 {
		maxNights = config.DefaultMaxNights
	}
	return &BookingService{
		store:     store,
		tariffs:   tariffs,
		publisher: publisher,
		policy:    OverlapPolicy{SameDayTurnover: cfg.SameDayTurnover},
		payMethod: cfg.PaymentMethod,
		maxNights: maxNights,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create books a room for a guest. The room row stays locked from the
// availability check until commit, so two requests for the same room
// cannot both pass the overlap check.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (model.Booking, error) {
	if err := s.checkStay(in.CheckIn, in.CheckOut); err != nil {
		return model.Booking{}, err
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentPending
	}

	var (
		created model.Booking
		paid    bool
	)
	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		if _, err := tx.GuestByID(ctx, in.GuestID); err != nil {
			return err
		}
		room, err := tx.RoomByIDForUpdate(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if !room.IsAvailable {
			return ErrRoomUnavailable
		}
		existing, err := tx.BookingsByRoom(ctx, room.ID)
		if err != nil {
			return fmt.Errorf("load room bookings: %w", err)
		}
		if s.policy.HasConflict(existing, in.CheckIn, in.CheckOut, 0) {
			return ErrDateConflict
		}
		tariff, err := SelectTariff(ctx, tx, room.Type, in.CheckIn, CountNights(in.CheckIn, in.CheckOut))
		if err != nil {
			return err
		}

		b := model.Booking{
			GuestID:         in.GuestID,
			RoomID:          room.ID,
			CheckInDate:     in.CheckIn,
			CheckOutDate:    in.CheckOut,
			Status:          model.BookingPending,
			TotalPrice:      ComputeTotal(tariff, in.CheckIn, in.CheckOut),
			SpecialRequests: in.SpecialRequests,
			PaymentStatus:   paymentStatus,
		}
		if err := tx.CreateBooking(ctx, &b); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		if err := tx.SetRoomAvailability(ctx, room.ID, false); err != nil {
			return err
		}
		if b.PaymentStatus == model.PaymentPaid {
			if paid, err = s.recordPayment(ctx, tx, b); err != nil {
				return err
			}
		}
		created = b
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	s.publish(ctx, queue.EventBookingCreated, created, "")
	if paid {
		s.publish(ctx, queue.EventBookingPaid, created, "")
	}
	return created, nil
}

// Update applies a partial change to booking id. A status change must follow
// the state machine and drives room availability: cancelled and checked_out
// free the room unless another booking holds it, checked_in occupies it and
// activates the guest. Setting the
// payment status to "paid" records the booking's income at most once.
func (s *BookingService) Update(ctx context.Context, id uint64, in UpdateBookingInput) (model.Booking, error) {
	if in.Status != nil && !in.Status.Valid() {
		return model.Booking{}, ErrInvalidStatus
	}

	var (
		updated    model.Booking
		prevStatus model.BookingStatus
		paid       bool
	)
	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		b, err := tx.BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		prevStatus = b.Status
		room, err := tx.RoomByIDForUpdate(ctx, b.RoomID)
		if err != nil {
			return err
		}

		statusChanged := in.Status != nil && *in.Status != b.Status
		if statusChanged {
			if !b.Status.CanTransitionTo(*in.Status) {
				return errInvalidTransition(b.Status, *in.Status)
			}
			b.Status = *in.Status
		}
		// A booking closed by this request keeps its stay; new dates are
		// not checked or priced.
		if statusChanged && b.Status.IsTerminal() {
			if in.TotalPrice != nil {
				b.TotalPrice = *in.TotalPrice
			}
		} else if err := s.applyDates(ctx, tx, &b, room, in); err != nil {
			return err
		}
		if statusChanged {
			if err := s.applyStatusEffects(ctx, tx, b); err != nil {
				return err
			}
		}
		if in.SpecialRequests != nil {
			b.SpecialRequests = in.SpecialRequests
		}
		if in.PaymentStatus != nil {
			b.PaymentStatus = *in.PaymentStatus
		}

		if err := tx.UpdateBooking(ctx, &b); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		if in.PaymentStatus != nil && *in.PaymentStatus == model.PaymentPaid {
			if paid, err = s.recordPayment(ctx, tx, b); err != nil {
				return err
			}
		}
		updated = b
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	if updated.Status != prevStatus {
		s.publish(ctx, queue.EventBookingStatusChanged, updated, prevStatus)
	}
	if paid {
		s.publish(ctx, queue.EventBookingPaid, updated, "")
	}
	return updated, nil
}

// applyDates moves the stay when the input changes either date and reprices
// it with the tariff selected for the new dates. Without a date change an
// explicit TotalPrice overrides the stored total.
func (s *BookingService) applyDates(ctx context.Context, tx repository.BookingTx, b *model.Booking, room model.Room, in UpdateBookingInput) error {
	checkIn, checkOut := b.CheckInDate, b.CheckOutDate
	if in.CheckIn != nil {
		checkIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		checkOut = *in.CheckOut
	}
	if checkIn.Equal(b.CheckInDate) && checkOut.Equal(b.CheckOutDate) {
		if in.TotalPrice != nil {
			b.TotalPrice = *in.TotalPrice
		}
		return nil
	}

	if b.Status.IsTerminal() {
		return ErrBookingClosed
	}
	if err := s.checkStay(checkIn, checkOut); err != nil {
		return err
	}
	existing, err := tx.BookingsByRoom(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("load room bookings: %w", err)
	}
	if s.policy.HasConflict(existing, checkIn, checkOut, b.ID) {
		return ErrDateConflict
	}
	tariff, err := SelectTariff(ctx, tx, room.Type, checkIn, CountNights(checkIn, checkOut))
	if err != nil {
		return err
	}
	b.CheckInDate, b.CheckOutDate = checkIn, checkOut
	b.TotalPrice = ComputeTotal(tariff, checkIn, checkOut)
	return nil
}

// checkStay rejects empty or inverted ranges and stays longer than the
// configured maximum.
func (s *BookingService) checkStay(checkIn, checkOut model.Date) error {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return ErrInvalidDateRange
	}
	if nights := CountNights(checkIn, checkOut); nights > s.maxNights {
		return &stayLengthError{nights: nights, max: s.maxNights}
	}
	return nil
}

func (s *BookingService) applyStatusEffects(ctx context.Context, tx repository.BookingTx, b model.Booking) error {
	switch b.Status {
	case model.BookingCancelled, model.BookingCheckedOut:
		return releaseRoom(ctx, tx, b.RoomID, b.ID)
	case model.BookingCheckedIn:
		if err := tx.SetRoomAvailability(ctx, b.RoomID, false); err != nil {
			return err
		}
		return tx.SetGuestActive(ctx, b.GuestID, true)
	}
	return nil
}

// recordPayment inserts the income transaction for a paid booking unless one
// already exists. It reports whether a transaction was written.
func (s *BookingService) recordPayment(ctx context.Context, tx repository.BookingTx, b model.Booking) (bool, error) {
	exists, err := tx.HasBookingIncome(ctx, b.ID, model.CategoryBookingPayment)
	if err != nil {
		return false, fmt.Errorf("check booking income: %w", err)
	}
	if exists {
		return false, nil
	}
	bookingID := b.ID
	desc := fmt.Sprintf("Payment for booking #%d", b.ID)
	t := model.FinancialTransaction{
		BookingID:       &bookingID,
		Amount:          b.TotalPrice,
		Type:            model.TransactionIncome,
		Category:        model.CategoryBookingPayment,
		Description:     &desc,
		PaymentMethod:   s.payMethod,
		TransactionDate: model.DateOf(s.now()),
	}
	if err := tx.CreateTransaction(ctx, &t); err != nil {
		return false, fmt.Errorf("record booking payment: %w", err)
	}
	return true, nil
}

// CheckIn moves a confirmed booking to checked_in, occupies the room and
// marks the guest active. Any other current status is rejected.
func (s *BookingService) CheckIn(ctx context.Context, id uint64) (model.Booking, error) {
	var checkedIn model.Booking
	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		b, err := tx.BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b.Status != model.BookingConfirmed {
			return ErrNotConfirmed
		}
		b.Status = model.BookingCheckedIn
		if err := tx.UpdateBooking(ctx, &b); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		if err := s.applyStatusEffects(ctx, tx, b); err != nil {
			return err
		}
		checkedIn = b
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	s.publish(ctx, queue.EventBookingStatusChanged, checkedIn, model.BookingConfirmed)
	return checkedIn, nil
}

// Delete removes booking id. When the booking still held its room and no
// other booking does, the room becomes available again. Cancel and
// check-out release the room under the same rule.
func (s *BookingService) Delete(ctx context.Context, id uint64) error {
	var deleted model.Booking
	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		b, err := tx.BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteBooking(ctx, id); err != nil {
			return err
		}
		deleted = b
		if !b.Status.HoldsRoom() {
			return nil
		}
		return releaseRoom(ctx, tx, b.RoomID, b.ID)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, queue.EventBookingDeleted, deleted, "")
	return nil
}

// releaseRoom makes roomID available unless a booking other than exclude
// still holds it.
func releaseRoom(ctx context.Context, tx repository.BookingTx, roomID, exclude uint64) error {
	others, err := tx.BookingsByRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("load room bookings: %w", err)
	}
	for _, o := range others {
		if o.ID != exclude && o.Status.HoldsRoom() {
			return nil
		}
	}
	return tx.SetRoomAvailability(ctx, roomID, true)
}

// Quote prices a prospective stay without reserving anything.
func (s *BookingService) Quote(ctx context.Context, roomType model.RoomType, checkIn, checkOut model.Date) (Quote, error) {
	if err := s.checkStay(checkIn, checkOut); err != nil {
		return Quote{}, err
	}
	nights := CountNights(checkIn, checkOut)
	tariff, err := SelectTariff(ctx, s.tariffs, roomType, checkIn, nights)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		RoomType: roomType,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   nights,
		Tariff:   tariff,
		PerNight: PriceBreakdown(tariff, checkIn, checkOut),
		Total:    ComputeTotal(tariff, checkIn, checkOut),
	}, nil
}

// publish is best effort: the change is already committed, so a broker
// failure is logged and otherwise ignored.
func (s *BookingService) publish(ctx context.Context, typ queue.EventType, b model.Booking, prev model.BookingStatus) {
	if s.publisher == nil {
		return
	}
	ev := queue.NewBookingEvent(typ, b, s.now())
	ev.PreviousStatus = string(prev)
	if err := s.publisher.PublishBookingEvent(ctx, ev); err != nil {
		log.Printf("booking: publish %s for booking %d failed: %v", typ, b.ID, err)
	}
}

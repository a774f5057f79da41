package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/hotel-manager/internal/model"
)

// BookingTx is the view of the database a booking mutation works against.
// Every call shares one *sql.Tx, so a room flipped by a status change
// commits or rolls back together with the booking row.
type BookingTx interface {
	GuestByID(ctx context.Context, id uint64) (model.Guest, error)
	SetGuestActive(ctx context.Context, id uint64, active bool) error

	// RoomByIDForUpdate locks the room row until the transaction ends, which
	// serializes concurrent bookings of the same room.
	RoomByIDForUpdate(ctx context.Context, id uint64) (model.Room, error)
	SetRoomAvailability(ctx context.Context, id uint64, available bool) error

	// BookingsByRoom returns the room's bookings that are not cancelled.
	BookingsByRoom(ctx context.Context, roomID uint64) ([]model.Booking, error)
	TariffsForDate(ctx context.Context, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error)

	CreateBooking(ctx context.Context, b *model.Booking) error
	BookingByIDForUpdate(ctx context.Context, id uint64) (model.Booking, error)
	UpdateBooking(ctx context.Context, b *model.Booking) error
	DeleteBooking(ctx context.Context, id uint64) error

	// HasBookingIncome reports whether an income transaction tagged with
	// category already exists for the booking.
	HasBookingIncome(ctx context.Context, bookingID uint64, category string) (bool, error)
	CreateTransaction(ctx context.Context, t *model.FinancialTransaction) error
}

// Store runs booking mutations inside database transactions.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InTx begins a transaction, hands it to fn and commits when fn returns nil.
// Any error from fn rolls everything back and is returned unchanged.
func (s *Store) InTx(ctx context.Context, fn func(tx BookingTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

type bookingTx struct {
	tx *sql.Tx
}

func (b *bookingTx) GuestByID(ctx context.Context, id uint64) (model.Guest, error) {
	return getGuest(ctx, b.tx, id)
}

func (b *bookingTx) SetGuestActive(ctx context.Context, id uint64, active bool) error {
	res, err := b.tx.ExecContext(ctx,
		`UPDATE guests SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrGuestNotFound)
}

func (b *bookingTx) RoomByIDForUpdate(ctx context.Context, id uint64) (model.Room, error) {
	return getRoom(ctx, b.tx, id, true)
}

func (b *bookingTx) SetRoomAvailability(ctx context.Context, id uint64, available bool) error {
	return setRoomAvailability(ctx, b.tx, id, available)
}

func (b *bookingTx) BookingsByRoom(ctx context.Context, roomID uint64) ([]model.Booking, error) {
	return queryBookings(ctx, b.tx,
		`SELECT `+bookingColumns+` FROM bookings WHERE room_id = ? AND status <> ? ORDER BY check_in_date`,
		roomID, model.BookingCancelled)
}

func (b *bookingTx) TariffsForDate(ctx context.Context, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error) {
	return tariffsForDate(ctx, b.tx, roomType, day)
}

func (b *bookingTx) CreateBooking(ctx context.Context, bk *model.Booking) error {
	res, err := b.tx.ExecContext(ctx,
		`INSERT INTO bookings (guest_id, room_id, check_in_date, check_out_date, status, total_price, special_requests, payment_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bk.GuestID, bk.RoomID, bk.CheckInDate, bk.CheckOutDate, bk.Status, bk.TotalPrice, bk.SpecialRequests, bk.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	saved, err := getBooking(ctx, b.tx, id, false)
	if err != nil {
		return err
	}
	*bk = saved
	return nil
}

func (b *bookingTx) BookingByIDForUpdate(ctx context.Context, id uint64) (model.Booking, error) {
	return getBooking(ctx, b.tx, id, true)
}

func (b *bookingTx) UpdateBooking(ctx context.Context, bk *model.Booking) error {
	res, err := b.tx.ExecContext(ctx,
		`UPDATE bookings
		 SET check_in_date = ?, check_out_date = ?, status = ?, total_price = ?,
		     special_requests = ?, payment_status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		bk.CheckInDate, bk.CheckOutDate, bk.Status, bk.TotalPrice, bk.SpecialRequests, bk.PaymentStatus, bk.ID)
	if err != nil {
		return err
	}
	if err := affectedOrMissing(res, ErrBookingNotFound); err != nil {
		return err
	}
	saved, err := getBooking(ctx, b.tx, bk.ID, false)
	if err != nil {
		return err
	}
	*bk = saved
	return nil
}

func (b *bookingTx) DeleteBooking(ctx context.Context, id uint64) error {
	res, err := b.tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrBookingNotFound)
}

func (b *bookingTx) HasBookingIncome(ctx context.Context, bookingID uint64, category string) (bool, error) {
	var exists bool
	err := b.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM financial_transactions
		                WHERE booking_id = ? AND transaction_type = ? AND category = ?)`,
		bookingID, model.TransactionIncome, category).Scan(&exists)
	return exists, err
}

func (b *bookingTx) CreateTransaction(ctx context.Context, t *model.FinancialTransaction) error {
	return insertTransaction(ctx, b.tx, t)
}

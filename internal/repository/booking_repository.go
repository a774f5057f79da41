package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-manager/internal/model"
)

const bookingColumns = `id, guest_id, room_id, check_in_date, check_out_date, status, total_price, special_requests, payment_status, created_at, updated_at`

// BookingRepo serves booking reads. Writes go through Store so that room
// availability changes commit together with the booking.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingFilter narrows List. Zero ids match every booking.
type BookingFilter struct {
	GuestID uint64
	RoomID  uint64
}

func scanBooking(s rowScanner) (model.Booking, error) {
	var b model.Booking
	err := s.Scan(&b.ID, &b.GuestID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate, &b.Status,
		&b.TotalPrice, &b.SpecialRequests, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func getBooking(ctx context.Context, q querier, id uint64, forUpdate bool) (model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBooking(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Booking{}, notFound(err, ErrBookingNotFound)
	}
	return b, nil
}

func queryBookings(ctx context.Context, q querier, query string, args ...any) ([]model.Booking, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return getBooking(ctx, r.db, id, false)
}

// List returns bookings ordered by check-in date, newest first.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter, p Page) ([]model.Booking, error) {
	p = p.normalized()
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1 = 1`
	var args []any
	if f.GuestID != 0 {
		q += ` AND guest_id = ?`
		args = append(args, f.GuestID)
	}
	if f.RoomID != 0 {
		q += ` AND room_id = ?`
		args = append(args, f.RoomID)
	}
	q += ` ORDER BY check_in_date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, p.Limit, p.Skip)
	return queryBookings(ctx, r.db, q, args...)
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-manager/internal/model"
)

const roomColumns = `id, room_number, room_type, floor, capacity, is_available, description, amenities, created_at, updated_at`

// RoomRepo provides CRUD over the rooms table.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

func scanRoom(s rowScanner) (model.Room, error) {
	var r model.Room
	err := s.Scan(&r.ID, &r.Number, &r.Type, &r.Floor, &r.Capacity, &r.IsAvailable,
		&r.Description, &r.Amenities, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func getRoom(ctx context.Context, q querier, id uint64, forUpdate bool) (model.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	r, err := scanRoom(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Room{}, notFound(err, ErrRoomNotFound)
	}
	return r, nil
}

func setRoomAvailability(ctx context.Context, q querier, id uint64, available bool) error {
	res, err := q.ExecContext(ctx,
		`UPDATE rooms SET is_available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, available, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrRoomNotFound)
}

// GetByID returns ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return getRoom(ctx, r.db, id, false)
}

// List returns rooms ordered by id. With availableOnly set, rooms held by a
// booking are left out.
func (r *RoomRepo) List(ctx context.Context, availableOnly bool, p Page) ([]model.Room, error) {
	p = p.normalized()
	q := `SELECT ` + roomColumns + ` FROM rooms`
	if availableOnly {
		q += ` WHERE is_available = TRUE`
	}
	q += ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// Create inserts the room and reloads it so defaults and timestamps are set.
// A duplicate room number returns ErrRoomNumberExists.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (room_number, room_type, floor, capacity, is_available, description, amenities)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		room.Number, room.Type, room.Floor, room.Capacity, room.IsAvailable, room.Description, room.Amenities)
	if err != nil {
		if isDuplicate(err) {
			return ErrRoomNumberExists
		}
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	saved, err := getRoom(ctx, r.db, id, false)
	if err != nil {
		return err
	}
	*room = saved
	return nil
}

// Update writes every editable column of room. In the same transaction it
// copies a changed room type onto the room's tariffs and refuses to flip
// IsAvailable while a booking still holds the room.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	current, err := getRoom(ctx, tx, room.ID, true)
	if err != nil {
		return err
	}
	if current.IsAvailable != room.IsAvailable {
		var holding int
		if err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status IN (?, ?, ?)`,
			room.ID, model.BookingPending, model.BookingConfirmed, model.BookingCheckedIn).Scan(&holding); err != nil {
			return err
		}
		if holding > 0 {
			return ErrRoomOccupied
		}
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE rooms
		 SET room_number = ?, room_type = ?, floor = ?, capacity = ?, is_available = ?,
		     description = ?, amenities = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		room.Number, room.Type, room.Floor, room.Capacity, room.IsAvailable,
		room.Description, room.Amenities, room.ID); err != nil {
		if isDuplicate(err) {
			err = ErrRoomNumberExists
		}
		return err
	}
	if current.Type != room.Type {
		if _, err = tx.ExecContext(ctx,
			`UPDATE room_tariffs SET room_type = ?, updated_at = CURRENT_TIMESTAMP WHERE room_id = ?`,
			room.Type, room.ID); err != nil {
			return err
		}
	}

	saved, err := getRoom(ctx, tx, room.ID, false)
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	*room = saved
	return nil
}

// Delete removes the room. Tariffs and bookings go with it through the
// foreign keys' ON DELETE CASCADE.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrRoomNotFound)
}

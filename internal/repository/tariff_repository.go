package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-manager/internal/model"
)

const tariffColumns = `id, room_id, room_type, price_per_night, weekend_price_per_night, min_nights, start_date, end_date, created_at, updated_at`

// TariffRepo provides CRUD over room_tariffs and the date lookups used for
// pricing.
type TariffRepo struct {
	db *sql.DB
}

func NewTariffRepo(db *sql.DB) *TariffRepo { return &TariffRepo{db: db} }

func scanTariff(s rowScanner) (model.RoomTariff, error) {
	var t model.RoomTariff
	err := s.Scan(&t.ID, &t.RoomID, &t.RoomType, &t.PricePerNight, &t.WeekendPricePerNight,
		&t.MinNights, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func getTariff(ctx context.Context, q querier, id uint64) (model.RoomTariff, error) {
	t, err := scanTariff(q.QueryRowContext(ctx, `SELECT `+tariffColumns+` FROM room_tariffs WHERE id = ?`, id))
	if err != nil {
		return model.RoomTariff{}, notFound(err, ErrTariffNotFound)
	}
	return t, nil
}

func queryTariffs(ctx context.Context, q querier, query string, args ...any) ([]model.RoomTariff, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RoomTariff, 0)
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// tariffsForDate returns the tariffs of roomType whose window contains day,
// highest min_nights first.
func tariffsForDate(ctx context.Context, q querier, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error) {
	return queryTariffs(ctx, q,
		`SELECT `+tariffColumns+` FROM room_tariffs
		 WHERE room_type = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY min_nights DESC, id`,
		roomType, day, day)
}

func (r *TariffRepo) TariffsForDate(ctx context.Context, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error) {
	return tariffsForDate(ctx, r.db, roomType, day)
}

// Current returns the base tariff of roomType on day: the covering tariff
// with the lowest min_nights.
func (r *TariffRepo) Current(ctx context.Context, roomType model.RoomType, day model.Date) (model.RoomTariff, error) {
	t, err := scanTariff(r.db.QueryRowContext(ctx,
		`SELECT `+tariffColumns+` FROM room_tariffs
		 WHERE room_type = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY min_nights ASC, id LIMIT 1`,
		roomType, day, day))
	if err != nil {
		return model.RoomTariff{}, notFound(err, ErrTariffNotFound)
	}
	return t, nil
}

func (r *TariffRepo) GetByID(ctx context.Context, id uint64) (model.RoomTariff, error) {
	return getTariff(ctx, r.db, id)
}

// List returns tariffs ordered by room type and start date. An empty
// roomType matches all.
func (r *TariffRepo) List(ctx context.Context, roomType model.RoomType, p Page) ([]model.RoomTariff, error) {
	p = p.normalized()
	q := `SELECT ` + tariffColumns + ` FROM room_tariffs`
	var args []any
	if roomType != "" {
		q += ` WHERE room_type = ?`
		args = append(args, roomType)
	}
	q += ` ORDER BY room_type, start_date, min_nights LIMIT ? OFFSET ?`
	args = append(args, p.Limit, p.Skip)
	return queryTariffs(ctx, r.db, q, args...)
}

func (r *TariffRepo) Create(ctx context.Context, t *model.RoomTariff) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO room_tariffs (room_id, room_type, price_per_night, weekend_price_per_night, min_nights, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.RoomID, t.RoomType, t.PricePerNight, t.WeekendPricePerNight, t.MinNights, t.StartDate, t.EndDate)
	if err != nil {
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	saved, err := getTariff(ctx, r.db, id)
	if err != nil {
		return err
	}
	*t = saved
	return nil
}

func (r *TariffRepo) Update(ctx context.Context, t *model.RoomTariff) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_tariffs
		 SET room_id = ?, room_type = ?, price_per_night = ?, weekend_price_per_night = ?,
		     min_nights = ?, start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.RoomID, t.RoomType, t.PricePerNight, t.WeekendPricePerNight, t.MinNights, t.StartDate, t.EndDate, t.ID)
	if err != nil {
		return err
	}
	if err := affectedOrMissing(res, ErrTariffNotFound); err != nil {
		return err
	}
	saved, err := getTariff(ctx, r.db, t.ID)
	if err != nil {
		return err
	}
	*t = saved
	return nil
}

func (r *TariffRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM room_tariffs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrTariffNotFound)
}

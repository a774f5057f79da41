package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-manager/internal/model"
)

const guestColumns = `id, first_name, last_name, email, phone, address, id_type, id_number, preferences, is_active, created_at, updated_at`

// GuestRepo provides CRUD over the guests table.
type GuestRepo struct {
	db *sql.DB
}

func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

func scanGuest(s rowScanner) (model.Guest, error) {
	var g model.Guest
	err := s.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.Address,
		&g.IDType, &g.IDNumber, &g.Preferences, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func getGuest(ctx context.Context, q querier, id uint64) (model.Guest, error) {
	g, err := scanGuest(q.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = ?`, id))
	if err != nil {
		return model.Guest{}, notFound(err, ErrGuestNotFound)
	}
	return g, nil
}

func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	return getGuest(ctx, r.db, id)
}

func (r *GuestRepo) List(ctx context.Context, p Page) ([]model.Guest, error) {
	p = p.normalized()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests ORDER BY id LIMIT ? OFFSET ?`, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Create inserts the guest with a normalized email. A duplicate email
// returns ErrEmailExists.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guests (first_name, last_name, email, phone, address, id_type, id_number, preferences, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.FirstName, g.LastName, g.Email, g.Phone, g.Address, g.IDType, g.IDNumber, g.Preferences, g.IsActive)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	saved, err := getGuest(ctx, r.db, id)
	if err != nil {
		return err
	}
	*g = saved
	return nil
}

func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	res, err := r.db.ExecContext(ctx,
		`UPDATE guests
		 SET first_name = ?, last_name = ?, email = ?, phone = ?, address = ?, id_type = ?,
		     id_number = ?, preferences = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		g.FirstName, g.LastName, g.Email, g.Phone, g.Address, g.IDType, g.IDNumber, g.Preferences, g.IsActive, g.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	if err := affectedOrMissing(res, ErrGuestNotFound); err != nil {
		return err
	}
	saved, err := getGuest(ctx, r.db, g.ID)
	if err != nil {
		return err
	}
	*g = saved
	return nil
}

func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrGuestNotFound)
}

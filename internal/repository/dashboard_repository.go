package repository

import (
	"context"
	"database/sql"
)

// DashboardStats is the front-desk overview.
type DashboardStats struct {
	TotalRooms    int `json:"totalRooms"`
	OccupiedRooms int `json:"occupiedRooms"`
	TotalBookings int `json:"totalBookings"`
	ActiveGuests  int `json:"activeGuests"`
}

type DashboardRepo struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// Stats counts rooms, rooms currently unavailable, all bookings and active
// guests in a single round trip.
func (r *DashboardRepo) Stats(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM rooms),
		   (SELECT COUNT(*) FROM rooms WHERE is_available = FALSE),
		   (SELECT COUNT(*) FROM bookings),
		   (SELECT COUNT(*) FROM guests WHERE is_active = TRUE)`).Scan(&s.TotalRooms, &s.OccupiedRooms, &s.TotalBookings, &s.ActiveGuests)
	return s, err
}

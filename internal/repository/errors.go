// Package repository holds the MySQL data access layer. Lookups that find
// nothing return one of the not-found sentinels below and unique-key
// violations return a conflict sentinel, so handlers can map failures to
// HTTP statuses through apperror without inspecting driver errors.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-manager/internal/apperror"
)

var (
	ErrRoomNotFound        = apperror.New(apperror.KindNotFound, "room not found")
	ErrGuestNotFound       = apperror.New(apperror.KindNotFound, "guest not found")
	ErrBookingNotFound     = apperror.New(apperror.KindNotFound, "booking not found")
	ErrTariffNotFound      = apperror.New(apperror.KindNotFound, "tariff not found")
	ErrTransactionNotFound = apperror.New(apperror.KindNotFound, "financial transaction not found")
	ErrEmployeeNotFound    = apperror.New(apperror.KindNotFound, "employee not found")
	ErrUserNotFound        = apperror.New(apperror.KindNotFound, "user not found")
)

var (
	ErrEmailExists      = apperror.New(apperror.KindConflict, "email already exists")
	ErrRoomNumberExists = apperror.New(apperror.KindConflict, "room number already exists")
	// ErrRoomOccupied is returned when an edit tries to flip the availability
	// of a room that is held by a pending, confirmed or checked-in booking.
	ErrRoomOccupied = apperror.New(apperror.KindConflict, "room availability is managed by its active booking")
)

// mysqlDuplicateEntry is the server error number for unique-key violations.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}

// notFound maps sql.ErrNoRows to the given sentinel and passes other errors
// through.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
	"github.com/iliyamo/hotel-manager/internal/service"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body)
	}
}

type roomStore struct {
	rooms  map[uint64]model.Room
	nextID uint64
}

func newRoomStore(rooms ...model.Room) *roomStore {
	s := &roomStore{rooms: map[uint64]model.Room{}, nextID: 100}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *roomStore) GetByID(_ context.Context, id uint64) (model.Room, error) {
	r, ok := s.rooms[id]
	if !ok {
		return model.Room{}, repository.ErrRoomNotFound
	}
	return r, nil
}

func (s *roomStore) List(_ context.Context, availableOnly bool, _ repository.Page) ([]model.Room, error) {
	var out []model.Room
	for _, r := range s.rooms {
		if !availableOnly || r.IsAvailable {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *roomStore) Create(_ context.Context, room *model.Room) error {
	for _, r := range s.rooms {
		if r.Number == room.Number {
			return repository.ErrRoomNumberExists
		}
	}
	s.nextID++
	room.ID = s.nextID
	s.rooms[room.ID] = *room
	return nil
}

func (s *roomStore) Update(_ context.Context, room *model.Room) error {
	s.rooms[room.ID] = *room
	return nil
}

func (s *roomStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.rooms[id]; !ok {
		return repository.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

type tariffStore struct {
	tariffs    map[uint64]model.RoomTariff
	currentDay model.Date
}

func (s *tariffStore) GetByID(_ context.Context, id uint64) (model.RoomTariff, error) {
	t, ok := s.tariffs[id]
	if !ok {
		return model.RoomTariff{}, repository.ErrTariffNotFound
	}
	return t, nil
}

func (s *tariffStore) List(_ context.Context, roomType model.RoomType, _ repository.Page) ([]model.RoomTariff, error) {
	var out []model.RoomTariff
	for _, t := range s.tariffs {
		if roomType == "" || t.RoomType == roomType {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *tariffStore) Current(_ context.Context, roomType model.RoomType, day model.Date) (model.RoomTariff, error) {
	s.currentDay = day
	for _, t := range s.tariffs {
		if t.RoomType == roomType && t.Covers(day) {
			return t, nil
		}
	}
	return model.RoomTariff{}, repository.ErrTariffNotFound
}

func (s *tariffStore) Create(_ context.Context, t *model.RoomTariff) error {
	t.ID = uint64(len(s.tariffs) + 1)
	s.tariffs[t.ID] = *t
	return nil
}

func (s *tariffStore) Update(_ context.Context, t *model.RoomTariff) error {
	s.tariffs[t.ID] = *t
	return nil
}

func (s *tariffStore) Delete(_ context.Context, id uint64) error {
	delete(s.tariffs, id)
	return nil
}

type bookingReader struct {
	bookings map[uint64]model.Booking
	filter   repository.BookingFilter
}

func (r *bookingReader) GetByID(_ context.Context, id uint64) (model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}

func (r *bookingReader) List(_ context.Context, f repository.BookingFilter, _ repository.Page) ([]model.Booking, error) {
	r.filter = f
	var out []model.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

// bookingManager records what the handler forwards and answers with err
// when set.
type bookingManager struct {
	created  service.CreateBookingInput
	updated  service.UpdateBookingInput
	quoted   [2]model.Date
	quotedRT model.RoomType
	err      error
}

func (m *bookingManager) Create(_ context.Context, in service.CreateBookingInput) (model.Booking, error) {
	m.created = in
	if m.err != nil {
		return model.Booking{}, m.err
	}
	return model.Booking{ID: 1, GuestID: in.GuestID, RoomID: in.RoomID, CheckInDate: in.CheckIn, CheckOutDate: in.CheckOut, Status: model.BookingPending}, nil
}

func (m *bookingManager) Update(_ context.Context, id uint64, in service.UpdateBookingInput) (model.Booking, error) {
	m.updated = in
	if m.err != nil {
		return model.Booking{}, m.err
	}
	return model.Booking{ID: id}, nil
}

func (m *bookingManager) CheckIn(_ context.Context, id uint64) (model.Booking, error) {
	if m.err != nil {
		return model.Booking{}, m.err
	}
	return model.Booking{ID: id, Status: model.BookingCheckedIn}, nil
}

func (m *bookingManager) Delete(_ context.Context, _ uint64) error { return m.err }

func (m *bookingManager) Quote(_ context.Context, rt model.RoomType, in, out model.Date) (service.Quote, error) {
	m.quotedRT = rt
	m.quoted = [2]model.Date{in, out}
	if m.err != nil {
		return service.Quote{}, m.err
	}
	return service.Quote{RoomType: rt, CheckIn: in, CheckOut: out, Nights: in.DaysUntil(out)}, nil
}

type transactionStore struct {
	txns map[uint64]model.FinancialTransaction
}

func (s *transactionStore) GetByID(_ context.Context, id uint64) (model.FinancialTransaction, error) {
	t, ok := s.txns[id]
	if !ok {
		return model.FinancialTransaction{}, repository.ErrTransactionNotFound
	}
	return t, nil
}

func (s *transactionStore) List(_ context.Context, _ uint64, _ repository.Page) ([]model.FinancialTransaction, error) {
	return nil, nil
}

func (s *transactionStore) Create(_ context.Context, t *model.FinancialTransaction) error {
	t.ID = uint64(len(s.txns) + 1)
	s.txns[t.ID] = *t
	return nil
}

func (s *transactionStore) Update(_ context.Context, t *model.FinancialTransaction) error {
	s.txns[t.ID] = *t
	return nil
}

func (s *transactionStore) Delete(_ context.Context, id uint64) error {
	delete(s.txns, id)
	return nil
}

type employeeStore struct {
	employees map[uint64]model.Employee
}

func (s *employeeStore) GetByID(_ context.Context, id uint64) (model.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return model.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *employeeStore) List(_ context.Context, _ bool, _ repository.Page) ([]model.Employee, error) {
	return nil, nil
}

func (s *employeeStore) Create(_ context.Context, e *model.Employee) error {
	e.ID = uint64(len(s.employees) + 1)
	s.employees[e.ID] = *e
	return nil
}

func (s *employeeStore) Update(_ context.Context, e *model.Employee) error {
	s.employees[e.ID] = *e
	return nil
}

func (s *employeeStore) Delete(_ context.Context, id uint64) error {
	delete(s.employees, id)
	return nil
}

type userStore struct {
	users map[uint64]model.User
}

func (s *userStore) Create(_ context.Context, email, _, fullName, role string, _ int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	id := uint64(len(s.users) + 1)
	s.users[id] = model.User{ID: id, Email: email, FullName: fullName, Role: role, IsActive: true}
	return id, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *userStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type tokenStore struct {
	live       map[string]uint64
	revokedAll []uint64
}

func (s *tokenStore) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	s.live[hash] = userID
	return nil
}

func (s *tokenStore) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	id, ok := s.live[hash]
	if !ok {
		return 0, repository.ErrRefreshInvalid
	}
	return id, nil
}

func (s *tokenStore) RevokeByHash(_ context.Context, hash string) error {
	delete(s.live, hash)
	return nil
}

func (s *tokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	s.revokedAll = append(s.revokedAll, userID)
	for h, id := range s.live {
		if id == userID {
			delete(s.live, h)
		}
	}
	return nil
}

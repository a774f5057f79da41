package service

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/queue"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// memStore is an in-memory TxRunner. A transaction works on the live maps
// and a failed fn restores the snapshot taken when it began.
type memStore struct {
	mu       sync.Mutex
	guests   map[uint64]model.Guest
	rooms    map[uint64]model.Room
	bookings map[uint64]model.Booking
	tariffs  []model.RoomTariff
	txns     []model.FinancialTransaction
	nextID   uint64
}

func newMemStore() *memStore {
	return &memStore{
		guests:   make(map[uint64]model.Guest),
		rooms:    make(map[uint64]model.Room),
		bookings: make(map[uint64]model.Booking),
		nextID:   1000,
	}
}

type memSnapshot struct {
	guests   map[uint64]model.Guest
	rooms    map[uint64]model.Room
	bookings map[uint64]model.Booking
	txns     []model.FinancialTransaction
	nextID   uint64
}

func cloneMap[V any](m map[uint64]V) map[uint64]V {
	out := make(map[uint64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memStore) snapshot() memSnapshot {
	return memSnapshot{
		guests:   cloneMap(m.guests),
		rooms:    cloneMap(m.rooms),
		bookings: cloneMap(m.bookings),
		txns:     append([]model.FinancialTransaction(nil), m.txns...),
		nextID:   m.nextID,
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.guests, m.rooms, m.bookings, m.txns, m.nextID = s.guests, s.rooms, s.bookings, s.txns, s.nextID
}

func (m *memStore) InTx(ctx context.Context, fn func(tx repository.BookingTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) TariffsForDate(ctx context.Context, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tariffsForDate(roomType, day), nil
}

func (m *memStore) tariffsForDate(roomType model.RoomType, day model.Date) []model.RoomTariff {
	var out []model.RoomTariff
	for _, t := range m.tariffs {
		if t.RoomType == roomType && t.Covers(day) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinNights > out[j].MinNights })
	return out
}

func (m *memStore) room(id uint64) model.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[id]
}

func (m *memStore) guest(id uint64) model.Guest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guests[id]
}

func (m *memStore) booking(id uint64) (model.Booking, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	return b, ok
}

func (m *memStore) transactions() []model.FinancialTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.FinancialTransaction(nil), m.txns...)
}

type memTx struct {
	m *memStore
}

func (t *memTx) GuestByID(ctx context.Context, id uint64) (model.Guest, error) {
	g, ok := t.m.guests[id]
	if !ok {
		return model.Guest{}, repository.ErrGuestNotFound
	}
	return g, nil
}

func (t *memTx) SetGuestActive(ctx context.Context, id uint64, active bool) error {
	g, ok := t.m.guests[id]
	if !ok {
		return repository.ErrGuestNotFound
	}
	g.IsActive = active
	t.m.guests[id] = g
	return nil
}

func (t *memTx) RoomByIDForUpdate(ctx context.Context, id uint64) (model.Room, error) {
	r, ok := t.m.rooms[id]
	if !ok {
		return model.Room{}, repository.ErrRoomNotFound
	}
	return r, nil
}

func (t *memTx) SetRoomAvailability(ctx context.Context, id uint64, available bool) error {
	r, ok := t.m.rooms[id]
	if !ok {
		return repository.ErrRoomNotFound
	}
	r.IsAvailable = available
	t.m.rooms[id] = r
	return nil
}

func (t *memTx) BookingsByRoom(ctx context.Context, roomID uint64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range t.m.bookings {
		if b.RoomID == roomID && b.Status != model.BookingCancelled {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memTx) TariffsForDate(ctx context.Context, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error) {
	return t.m.tariffsForDate(roomType, day), nil
}

func (t *memTx) CreateBooking(ctx context.Context, b *model.Booking) error {
	t.m.nextID++
	b.ID = t.m.nextID
	t.m.bookings[b.ID] = *b
	return nil
}

func (t *memTx) BookingByIDForUpdate(ctx context.Context, id uint64) (model.Booking, error) {
	b, ok := t.m.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}

func (t *memTx) UpdateBooking(ctx context.Context, b *model.Booking) error {
	if _, ok := t.m.bookings[b.ID]; !ok {
		return repository.ErrBookingNotFound
	}
	t.m.bookings[b.ID] = *b
	return nil
}

func (t *memTx) DeleteBooking(ctx context.Context, id uint64) error {
	if _, ok := t.m.bookings[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(t.m.bookings, id)
	return nil
}

func (t *memTx) HasBookingIncome(ctx context.Context, bookingID uint64, category string) (bool, error) {
	for _, tr := range t.m.txns {
		if tr.BookingID != nil && *tr.BookingID == bookingID &&
			tr.Type == model.TransactionIncome && tr.Category == category {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateTransaction(ctx context.Context, tr *model.FinancialTransaction) error {
	t.m.nextID++
	tr.ID = t.m.nextID
	t.m.txns = append(t.m.txns, *tr)
	return nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
}

func (p *recordingPublisher) PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []queue.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]queue.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/model"
)

func newTariffServer() (*tariffStore, *echo.Echo) {
	rooms := newRoomStore(model.Room{ID: 5, Number: "5", Type: model.RoomTypeGuestHouse, Capacity: 2})
	tariffs := &tariffStore{tariffs: map[uint64]model.RoomTariff{
		1: {
			ID:            1,
			RoomID:        5,
			RoomType:      model.RoomTypeGuestHouse,
			PricePerNight: decimal.NewFromInt(100),
			MinNights:     1,
			StartDate:     model.NewDate(2024, time.June, 1),
			EndDate:       model.NewDate(2024, time.June, 30),
		},
	}}
	h := NewTariffHandler(tariffs, rooms)
	e := newEcho()
	e.GET("/tariffs", h.List)
	e.GET("/tariffs/current", h.Current)
	e.GET("/tariffs/:id", h.Get)
	e.POST("/tariffs", h.Create)
	e.PUT("/tariffs/:id", h.Update)
	e.DELETE("/tariffs/:id", h.Delete)
	return tariffs, e
}

func TestTariffCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":"120.50","weekend_price_per_night":150,"start_date":"2024-07-01","end_date":"2024-07-31"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "type differs from room",
			body:       `{"room_id":5,"room_type":"FRAME","price_per_night":100,"start_date":"2024-07-01","end_date":"2024-07-31"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "room_type does not match",
		},
		{
			name:       "unknown room",
			body:       `{"room_id":9,"room_type":"GUEST_HOUSE","price_per_night":100,"start_date":"2024-07-01","end_date":"2024-07-31"}`,
			wantStatus: http.StatusNotFound,
			wantError:  "room not found",
		},
		{
			name:       "window reversed",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":100,"start_date":"2024-07-31","end_date":"2024-07-01"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "start_date must be before end_date",
		},
		{
			name:       "empty window",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":100,"start_date":"2024-07-01","end_date":"2024-07-01"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "start_date must be before end_date",
		},
		{
			name:       "zero price",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":0,"start_date":"2024-07-01","end_date":"2024-07-31"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "price_per_night must be greater than 0",
		},
		{
			name:       "negative weekend price",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":100,"weekend_price_per_night":-5,"start_date":"2024-07-01","end_date":"2024-07-31"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "weekend_price_per_night must be greater than 0",
		},
		{
			name:       "min nights below one",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":100,"min_nights":0,"start_date":"2024-07-01","end_date":"2024-07-31"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing start date",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":100,"end_date":"2024-07-31"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "start_date is required",
		},
		{
			name:       "malformed date",
			body:       `{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":100,"start_date":"07/01/2024","end_date":"2024-07-31"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, e := newTariffServer()
			rec := call(t, e, http.MethodPost, "/tariffs", tt.body)
			wantStatus(t, rec, tt.wantStatus)
			if tt.wantError != "" && !strings.Contains(rec.Body.String(), tt.wantError) {
				t.Errorf("body %s does not contain %q", rec.Body, tt.wantError)
			}
			wantCount := 1
			if tt.wantStatus == http.StatusCreated {
				wantCount = 2
			}
			if len(store.tariffs) != wantCount {
				t.Errorf("stored tariffs = %d, want %d", len(store.tariffs), wantCount)
			}
		})
	}
}

func TestTariffCreateDefaultsMinNights(t *testing.T) {
	store, e := newTariffServer()
	rec := call(t, e, http.MethodPost, "/tariffs",
		`{"room_id":5,"room_type":"GUEST_HOUSE","price_per_night":80,"start_date":"2024-07-01","end_date":"2024-07-31"}`)
	wantStatus(t, rec, http.StatusCreated)

	got := store.tariffs[2]
	if got.MinNights != 1 {
		t.Errorf("min_nights = %d, want 1", got.MinNights)
	}
	if got.WeekendPricePerNight.Valid {
		t.Errorf("weekend price = %v, want unset", got.WeekendPricePerNight)
	}
}

func TestTariffCurrent(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"covered date", "?room_type=GUEST_HOUSE&date=2024-06-10", http.StatusOK},
		{"lowercase type", "?room_type=guest_house&date=2024-06-30", http.StatusOK},
		{"outside window", "?room_type=GUEST_HOUSE&date=2024-08-01", http.StatusNotFound},
		{"other type", "?room_type=FRAME&date=2024-06-10", http.StatusNotFound},
		{"missing type", "?date=2024-06-10", http.StatusBadRequest},
		{"unknown type", "?room_type=VILLA", http.StatusBadRequest},
		{"bad date", "?room_type=GUEST_HOUSE&date=June", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := newTariffServer()
			rec := call(t, e, http.MethodGet, "/tariffs/current"+tt.query, "")
			wantStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestTariffCurrentDefaultsToToday(t *testing.T) {
	store, e := newTariffServer()
	before := model.Today()
	call(t, e, http.MethodGet, "/tariffs/current?room_type=FRAME", "")
	after := model.Today()

	if !store.currentDay.Equal(before) && !store.currentDay.Equal(after) {
		t.Errorf("looked up %s, want today", store.currentDay)
	}
}

func TestTariffUpdateRevalidatesWindow(t *testing.T) {
	store, e := newTariffServer()

	rec := call(t, e, http.MethodPut, "/tariffs/1", `{"end_date":"2024-05-01"}`)
	wantStatus(t, rec, http.StatusBadRequest)
	if got := store.tariffs[1].EndDate; !got.Equal(model.NewDate(2024, time.June, 30)) {
		t.Errorf("end_date changed to %s on a rejected update", got)
	}

	rec = call(t, e, http.MethodPut, "/tariffs/1", `{"price_per_night":"150","min_nights":3}`)
	wantStatus(t, rec, http.StatusOK)
	got := store.tariffs[1]
	if !got.PricePerNight.Equal(decimal.NewFromInt(150)) || got.MinNights != 3 {
		t.Errorf("tariff = %+v, want price 150 and min_nights 3", got)
	}

	rec = call(t, e, http.MethodPut, "/tariffs/2", `{"min_nights":3}`)
	wantStatus(t, rec, http.StatusNotFound)
}

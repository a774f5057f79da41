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

func newFinancialServer() (*transactionStore, *echo.Echo) {
	txns := &transactionStore{txns: map[uint64]model.FinancialTransaction{}}
	bookings := &bookingReader{bookings: map[uint64]model.Booking{7: {ID: 7}}}
	h := NewFinancialHandler(txns, bookings)
	e := newEcho()
	e.GET("/financial-transactions", h.List)
	e.GET("/financial-transactions/:id", h.Get)
	e.POST("/financial-transactions", h.Create)
	e.PUT("/financial-transactions/:id", h.Update)
	e.DELETE("/financial-transactions/:id", h.Delete)
	return txns, e
}

func TestTransactionCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "booking income",
			body:       `{"booking_id":7,"amount":"360.00","transaction_type":"income","category":"booking_payment","payment_method":"card","transaction_date":"2024-06-01"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "expense without booking",
			body:       `{"amount":45.5,"transaction_type":"expense","category":"laundry","payment_method":"cash"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown booking",
			body:       `{"booking_id":8,"amount":10,"transaction_type":"income","category":"extra","payment_method":"cash"}`,
			wantStatus: http.StatusNotFound,
			wantError:  "booking not found",
		},
		{
			name:       "zero amount",
			body:       `{"amount":0,"transaction_type":"income","category":"extra","payment_method":"cash"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "amount must be greater than 0",
		},
		{
			name:       "unknown type",
			body:       `{"amount":10,"transaction_type":"refund","category":"extra","payment_method":"cash"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "transaction_type must be one of",
		},
		{
			name:       "missing category",
			body:       `{"amount":10,"transaction_type":"income","payment_method":"cash"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "category is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, e := newFinancialServer()
			rec := call(t, e, http.MethodPost, "/financial-transactions", tt.body)
			wantStatus(t, rec, tt.wantStatus)
			if tt.wantError != "" && !strings.Contains(rec.Body.String(), tt.wantError) {
				t.Errorf("body %s does not contain %q", rec.Body, tt.wantError)
			}
			if created := tt.wantStatus == http.StatusCreated; created != (len(store.txns) == 1) {
				t.Errorf("stored %d transactions after status %d", len(store.txns), rec.Code)
			}
		})
	}
}

func TestTransactionDateDefaultsToToday(t *testing.T) {
	store, e := newFinancialServer()
	before := model.Today()
	rec := call(t, e, http.MethodPost, "/financial-transactions",
		`{"amount":12,"transaction_type":"expense","category":"supplies","payment_method":"cash"}`)
	after := model.Today()
	wantStatus(t, rec, http.StatusCreated)

	got := store.txns[1].TransactionDate
	if !got.Equal(before) && !got.Equal(after) {
		t.Errorf("transaction_date = %s, want today", got)
	}
}

func TestTransactionUpdate(t *testing.T) {
	store, e := newFinancialServer()
	store.txns[1] = model.FinancialTransaction{
		ID:              1,
		Amount:          decimal.NewFromInt(100),
		Type:            model.TransactionIncome,
		Category:        "extra",
		PaymentMethod:   "cash",
		TransactionDate: model.NewDate(2024, time.June, 1),
	}

	wantStatus(t, call(t, e, http.MethodPut, "/financial-transactions/1", `{"booking_id":8}`), http.StatusNotFound)
	wantStatus(t, call(t, e, http.MethodPut, "/financial-transactions/1", `{"amount":-3}`), http.StatusBadRequest)
	if got := store.txns[1]; got.BookingID != nil || !got.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("rejected updates changed the row: %+v", got)
	}

	rec := call(t, e, http.MethodPut, "/financial-transactions/1", `{"booking_id":7,"amount":"120.25","payment_method":" card "}`)
	wantStatus(t, rec, http.StatusOK)
	got := store.txns[1]
	if got.BookingID == nil || *got.BookingID != 7 {
		t.Errorf("booking_id = %v, want 7", got.BookingID)
	}
	if !got.Amount.Equal(decimal.RequireFromString("120.25")) || got.PaymentMethod != "card" {
		t.Errorf("transaction = %+v", got)
	}
	if got.Category != "extra" || !got.TransactionDate.Equal(model.NewDate(2024, time.June, 1)) {
		t.Errorf("untouched fields changed: %+v", got)
	}

	wantStatus(t, call(t, e, http.MethodPut, "/financial-transactions/2", `{"amount":1}`), http.StatusNotFound)
}

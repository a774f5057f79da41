package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// TransactionStore is implemented by *repository.TransactionRepo.
type TransactionStore interface {
	GetByID(ctx context.Context, id uint64) (model.FinancialTransaction, error)
	List(ctx context.Context, bookingID uint64, p repository.Page) ([]model.FinancialTransaction, error)
	Create(ctx context.Context, t *model.FinancialTransaction) error
	Update(ctx context.Context, t *model.FinancialTransaction) error
	Delete(ctx context.Context, id uint64) error
}

// FinancialHandler manages manual income and expense entries. Booking
// payments are also recorded here by the booking service.
type FinancialHandler struct {
	Transactions TransactionStore
	Bookings     BookingReader
}

func NewFinancialHandler(txns TransactionStore, bookings BookingReader) *FinancialHandler {
	return &FinancialHandler{Transactions: txns, Bookings: bookings}
}

type createTransactionReq struct {
	BookingID       *uint64               `json:"booking_id" validate:"omitempty,gte=1"`
	Amount          decimal.Decimal       `json:"amount"`
	TransactionType model.TransactionType `json:"transaction_type" validate:"required,oneof=income expense"`
	Category        string                `json:"category" validate:"required,max=50"`
	Description     *string               `json:"description"`
	PaymentMethod   string                `json:"payment_method" validate:"required,max=50"`
	TransactionDate model.Date            `json:"transaction_date"`
}

type updateTransactionReq struct {
	BookingID       *uint64                `json:"booking_id" validate:"omitempty,gte=1"`
	Amount          *decimal.Decimal       `json:"amount"`
	TransactionType *model.TransactionType `json:"transaction_type" validate:"omitempty,oneof=income expense"`
	Category        *string                `json:"category" validate:"omitempty,min=1,max=50"`
	Description     *string                `json:"description"`
	PaymentMethod   *string                `json:"payment_method" validate:"omitempty,min=1,max=50"`
	TransactionDate *model.Date            `json:"transaction_date"`
}

// bookingMustExist returns ErrBookingNotFound when id names no booking.
func (h *FinancialHandler) bookingMustExist(ctx context.Context, id *uint64) error {
	if id == nil {
		return nil
	}
	_, err := h.Bookings.GetByID(ctx, *id)
	return err
}

// List handles GET /v1/financial-transactions?booking_id=&skip=&limit=.
func (h *FinancialHandler) List(c echo.Context) error {
	bookingID, err := queryUint(c, "booking_id")
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Transactions.List(ctx, bookingID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FinancialHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	t, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /v1/financial-transactions. The date defaults to
// today.
func (h *FinancialHandler) Create(c echo.Context) error {
	var req createTransactionReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if !req.Amount.IsPositive() {
		return writeError(c, badRequest("amount must be greater than 0"))
	}
	t := model.FinancialTransaction{
		BookingID:       req.BookingID,
		Amount:          req.Amount,
		Type:            req.TransactionType,
		Category:        strings.TrimSpace(req.Category),
		Description:     req.Description,
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		TransactionDate: req.TransactionDate,
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = model.Today()
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.bookingMustExist(ctx, t.BookingID); err != nil {
		return writeError(c, err)
	}
	if err := h.Transactions.Create(ctx, &t); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *FinancialHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateTransactionReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return writeError(c, badRequest("amount must be greater than 0"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	t, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if req.BookingID != nil {
		if err := h.bookingMustExist(ctx, req.BookingID); err != nil {
			return writeError(c, err)
		}
		t.BookingID = req.BookingID
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.TransactionType != nil {
		t.Type = *req.TransactionType
	}
	if req.Category != nil {
		t.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.PaymentMethod != nil {
		t.PaymentMethod = strings.TrimSpace(*req.PaymentMethod)
	}
	if req.TransactionDate != nil && !req.TransactionDate.IsZero() {
		t.TransactionDate = *req.TransactionDate
	}
	if err := h.Transactions.Update(ctx, &t); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *FinancialHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Transactions.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Transaction deleted successfully"})
}

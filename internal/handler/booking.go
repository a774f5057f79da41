package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
	"github.com/iliyamo/hotel-manager/internal/service"
)

// BookingManager is the booking lifecycle; *service.BookingService
// implements it.
type BookingManager interface {
	Create(ctx context.Context, in service.CreateBookingInput) (model.Booking, error)
	Update(ctx context.Context, id uint64, in service.UpdateBookingInput) (model.Booking, error)
	CheckIn(ctx context.Context, id uint64) (model.Booking, error)
	Delete(ctx context.Context, id uint64) error
	Quote(ctx context.Context, roomType model.RoomType, checkIn, checkOut model.Date) (service.Quote, error)
}

// BookingReader serves booking reads straight from the pool.
type BookingReader interface {
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	List(ctx context.Context, f repository.BookingFilter, p repository.Page) ([]model.Booking, error)
}

type BookingHandler struct {
	Bookings BookingReader
	Manager  BookingManager
}

func NewBookingHandler(r BookingReader, m BookingManager) *BookingHandler {
	return &BookingHandler{Bookings: r, Manager: m}
}

type createBookingReq struct {
	GuestID         uint64     `json:"guest_id" validate:"required"`
	RoomID          uint64     `json:"room_id" validate:"required"`
	CheckInDate     model.Date `json:"check_in_date" validate:"required"`
	CheckOutDate    model.Date `json:"check_out_date" validate:"required"`
	SpecialRequests *string    `json:"special_requests"`
	PaymentStatus   string     `json:"payment_status" validate:"omitempty,max=20"`
}

type updateBookingReq struct {
	CheckInDate     *model.Date          `json:"check_in_date"`
	CheckOutDate    *model.Date          `json:"check_out_date"`
	Status          *model.BookingStatus `json:"status"`
	TotalPrice      *decimal.Decimal     `json:"total_price"`
	SpecialRequests *string              `json:"special_requests"`
	PaymentStatus   *string              `json:"payment_status" validate:"omitempty,min=1,max=20"`
}

// List handles GET /v1/bookings?guest_id=&room_id=&skip=&limit=.
func (h *BookingHandler) List(c echo.Context) error {
	var (
		f   repository.BookingFilter
		err error
	)
	if f.GuestID, err = queryUint(c, "guest_id"); err != nil {
		return writeError(c, err)
	}
	if f.RoomID, err = queryUint(c, "room_id"); err != nil {
		return writeError(c, err)
	}
	page, err := pageFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Bookings.List(ctx, f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Create handles POST /v1/bookings. The price is always computed from the
// tariffs; a client-sent total is ignored.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Manager.Create(ctx, service.CreateBookingInput{
		GuestID:         req.GuestID,
		RoomID:          req.RoomID,
		CheckIn:         req.CheckInDate,
		CheckOut:        req.CheckOutDate,
		SpecialRequests: req.SpecialRequests,
		PaymentStatus:   req.PaymentStatus,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Update handles PUT /v1/bookings/:id. Absent fields are left unchanged.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateBookingReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if req.TotalPrice != nil && req.TotalPrice.IsNegative() {
		return writeError(c, badRequest("total_price must not be negative"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Manager.Update(ctx, id, service.UpdateBookingInput{
		CheckIn:         req.CheckInDate,
		CheckOut:        req.CheckOutDate,
		Status:          req.Status,
		TotalPrice:      req.TotalPrice,
		SpecialRequests: req.SpecialRequests,
		PaymentStatus:   req.PaymentStatus,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Manager.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully"})
}

// CheckIn handles POST /v1/bookings/:id/checkin.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Manager.CheckIn(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Quote handles GET /v1/bookings/quote?room_type=&check_in_date=&check_out_date=.
func (h *BookingHandler) Quote(c echo.Context) error {
	rt, err := queryRoomType(c)
	if err != nil {
		return writeError(c, err)
	}
	if rt == "" {
		return writeError(c, badRequest("room_type is required"))
	}
	in, okIn, err := queryDate(c, "check_in_date")
	if err != nil {
		return writeError(c, err)
	}
	out, okOut, err := queryDate(c, "check_out_date")
	if err != nil {
		return writeError(c, err)
	}
	if !okIn || !okOut {
		return writeError(c, badRequest("check_in_date and check_out_date are required"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	q, err := h.Manager.Quote(ctx, rt, in, out)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

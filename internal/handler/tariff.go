package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// TariffStore is implemented by *repository.TariffRepo.
type TariffStore interface {
	GetByID(ctx context.Context, id uint64) (model.RoomTariff, error)
	List(ctx context.Context, roomType model.RoomType, p repository.Page) ([]model.RoomTariff, error)
	Current(ctx context.Context, roomType model.RoomType, day model.Date) (model.RoomTariff, error)
	Create(ctx context.Context, t *model.RoomTariff) error
	Update(ctx context.Context, t *model.RoomTariff) error
	Delete(ctx context.Context, id uint64) error
}

// RoomLookup resolves the room a tariff is attached to.
type RoomLookup interface {
	GetByID(ctx context.Context, id uint64) (model.Room, error)
}

type TariffHandler struct {
	Tariffs TariffStore
	Rooms   RoomLookup
}

func NewTariffHandler(tariffs TariffStore, rooms RoomLookup) *TariffHandler {
	return &TariffHandler{Tariffs: tariffs, Rooms: rooms}
}

type createTariffReq struct {
	RoomID               uint64              `json:"room_id" validate:"required"`
	RoomType             model.RoomType      `json:"room_type" validate:"required,oneof=GUEST_HOUSE FRAME"`
	PricePerNight        decimal.Decimal     `json:"price_per_night"`
	WeekendPricePerNight decimal.NullDecimal `json:"weekend_price_per_night"`
	MinNights            *int                `json:"min_nights" validate:"omitempty,gte=1"`
	StartDate            model.Date          `json:"start_date" validate:"required"`
	EndDate              model.Date          `json:"end_date" validate:"required"`
}

type updateTariffReq struct {
	RoomID               *uint64              `json:"room_id" validate:"omitempty,gte=1"`
	RoomType             *model.RoomType      `json:"room_type" validate:"omitempty,oneof=GUEST_HOUSE FRAME"`
	PricePerNight        *decimal.Decimal     `json:"price_per_night"`
	WeekendPricePerNight *decimal.NullDecimal `json:"weekend_price_per_night"`
	MinNights            *int                 `json:"min_nights" validate:"omitempty,gte=1"`
	StartDate            *model.Date          `json:"start_date"`
	EndDate              *model.Date          `json:"end_date"`
}

// checkTariff enforces the rules every stored tariff satisfies: a positive
// price, a positive weekend price when set, at least one night and a window
// that starts before it ends. The tariff's room must exist and have the
// tariff's room type.
func (h *TariffHandler) checkTariff(ctx context.Context, t model.RoomTariff) error {
	if !t.PricePerNight.IsPositive() {
		return badRequest("price_per_night must be greater than 0")
	}
	if t.WeekendPricePerNight.Valid && !t.WeekendPricePerNight.Decimal.IsPositive() {
		return badRequest("weekend_price_per_night must be greater than 0")
	}
	if t.MinNights < 1 {
		return badRequest("min_nights must be at least 1")
	}
	if !t.StartDate.Before(t.EndDate) {
		return badRequest("start_date must be before end_date")
	}
	room, err := h.Rooms.GetByID(ctx, t.RoomID)
	if err != nil {
		return err
	}
	if room.Type != t.RoomType {
		return badRequest("room_type does not match the room's type")
	}
	return nil
}

// List handles GET /v1/tariffs?room_type=&skip=&limit=.
func (h *TariffHandler) List(c echo.Context) error {
	rt, err := queryRoomType(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Tariffs.List(ctx, rt, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Current handles GET /v1/tariffs/current?room_type=&date=. The date
// defaults to today.
func (h *TariffHandler) Current(c echo.Context) error {
	rt, err := queryRoomType(c)
	if err != nil {
		return writeError(c, err)
	}
	if rt == "" {
		return writeError(c, badRequest("room_type is required"))
	}
	day, ok, err := queryDate(c, "date")
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		day = model.Today()
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	t, err := h.Tariffs.Current(ctx, rt, day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TariffHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	t, err := h.Tariffs.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TariffHandler) Create(c echo.Context) error {
	var req createTariffReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	t := model.RoomTariff{
		RoomID:               req.RoomID,
		RoomType:             req.RoomType,
		PricePerNight:        req.PricePerNight,
		WeekendPricePerNight: req.WeekendPricePerNight,
		MinNights:            1,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
	}
	if req.MinNights != nil {
		t.MinNights = *req.MinNights
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.checkTariff(ctx, t); err != nil {
		return writeError(c, err)
	}
	if err := h.Tariffs.Create(ctx, &t); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /v1/tariffs/:id. The merged tariff is validated again
// as a whole.
func (h *TariffHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateTariffReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	t, err := h.Tariffs.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if req.RoomID != nil {
		t.RoomID = *req.RoomID
	}
	if req.RoomType != nil {
		t.RoomType = *req.RoomType
	}
	if req.PricePerNight != nil {
		t.PricePerNight = *req.PricePerNight
	}
	if req.WeekendPricePerNight != nil {
		t.WeekendPricePerNight = *req.WeekendPricePerNight
	}
	if req.MinNights != nil {
		t.MinNights = *req.MinNights
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = *req.EndDate
	}
	if err := h.checkTariff(ctx, t); err != nil {
		return writeError(c, err)
	}
	if err := h.Tariffs.Update(ctx, &t); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TariffHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tariffs.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tariff deleted successfully"})
}

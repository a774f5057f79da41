package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// RoomStore is implemented by *repository.RoomRepo.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (model.Room, error)
	List(ctx context.Context, availableOnly bool, p repository.Page) ([]model.Room, error)
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uint64) error
}

type RoomHandler struct {
	Rooms RoomStore
}

func NewRoomHandler(rooms RoomStore) *RoomHandler { return &RoomHandler{Rooms: rooms} }

type createRoomReq struct {
	RoomNumber  string         `json:"room_number" validate:"required,max=20"`
	RoomType    model.RoomType `json:"room_type" validate:"required,oneof=GUEST_HOUSE FRAME"`
	Floor       int            `json:"floor" validate:"gte=0"`
	Capacity    int            `json:"capacity" validate:"gte=1"`
	IsAvailable *bool          `json:"is_available"`
	Description *string        `json:"description"`
	Amenities   *string        `json:"amenities"`
}

type updateRoomReq struct {
	RoomNumber  *string         `json:"room_number" validate:"omitempty,min=1,max=20"`
	RoomType    *model.RoomType `json:"room_type" validate:"omitempty,oneof=GUEST_HOUSE FRAME"`
	Floor       *int            `json:"floor" validate:"omitempty,gte=0"`
	Capacity    *int            `json:"capacity" validate:"omitempty,gte=1"`
	IsAvailable *bool           `json:"is_available"`
	Description *string         `json:"description"`
	Amenities   *string         `json:"amenities"`
}

// List handles GET /v1/rooms?available_only=&skip=&limit=.
func (h *RoomHandler) List(c echo.Context) error {
	availableOnly, err := queryBool(c, "available_only")
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	rooms, err := h.Rooms.List(ctx, availableOnly, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Create handles POST /v1/rooms. New rooms are available unless the body
// says otherwise.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	room := model.Room{
		Number:      strings.TrimSpace(req.RoomNumber),
		Type:        req.RoomType,
		Floor:       req.Floor,
		Capacity:    req.Capacity,
		IsAvailable: true,
		Description: req.Description,
		Amenities:   req.Amenities,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Rooms.Create(ctx, &room); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /v1/rooms/:id as a partial update.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateRoomReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if req.RoomNumber != nil {
		room.Number = strings.TrimSpace(*req.RoomNumber)
	}
	if req.RoomType != nil {
		room.Type = *req.RoomType
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}
	if err := h.Rooms.Update(ctx, &room); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id. The room's tariffs and bookings are
// removed with it.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Rooms.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Room deleted successfully"})
}

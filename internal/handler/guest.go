package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// GuestStore is implemented by *repository.GuestRepo.
type GuestStore interface {
	GetByID(ctx context.Context, id uint64) (model.Guest, error)
	List(ctx context.Context, p repository.Page) ([]model.Guest, error)
	Create(ctx context.Context, g *model.Guest) error
	Update(ctx context.Context, g *model.Guest) error
	Delete(ctx context.Context, id uint64) error
}

type GuestHandler struct {
	Guests GuestStore
}

func NewGuestHandler(guests GuestStore) *GuestHandler { return &GuestHandler{Guests: guests} }

type createGuestReq struct {
	FirstName   string  `json:"first_name" validate:"required,max=50"`
	LastName    string  `json:"last_name" validate:"required,max=50"`
	Email       string  `json:"email" validate:"required,email,max=100"`
	Phone       string  `json:"phone" validate:"required,max=20"`
	Address     *string `json:"address"`
	IDType      *string `json:"id_type" validate:"omitempty,max=20"`
	IDNumber    *string `json:"id_number" validate:"omitempty,max=50"`
	Preferences *string `json:"preferences"`
}

type updateGuestReq struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,min=1,max=20"`
	Address     *string `json:"address"`
	IDType      *string `json:"id_type" validate:"omitempty,max=20"`
	IDNumber    *string `json:"id_number" validate:"omitempty,max=50"`
	Preferences *string `json:"preferences"`
	IsActive    *bool   `json:"is_active"`
}

func (h *GuestHandler) List(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	guests, err := h.Guests.List(ctx, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, guests)
}

func (h *GuestHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GuestHandler) Create(c echo.Context) error {
	var req createGuestReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	g := model.Guest{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       req.Email,
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
		IDType:      req.IDType,
		IDNumber:    req.IDNumber,
		Preferences: req.Preferences,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Guests.Create(ctx, &g); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *GuestHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateGuestReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if req.FirstName != nil {
		g.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		g.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		g.Email = *req.Email
	}
	if req.Phone != nil {
		g.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		g.Address = req.Address
	}
	if req.IDType != nil {
		g.IDType = req.IDType
	}
	if req.IDNumber != nil {
		g.IDNumber = req.IDNumber
	}
	if req.Preferences != nil {
		g.Preferences = req.Preferences
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}
	if err := h.Guests.Update(ctx, &g); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Guests.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Guest deleted successfully"})
}

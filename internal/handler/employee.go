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

// EmployeeStore is implemented by *repository.EmployeeRepo.
type EmployeeStore interface {
	GetByID(ctx context.Context, id uint64) (model.Employee, error)
	List(ctx context.Context, activeOnly bool, p repository.Page) ([]model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, id uint64) error
}

type EmployeeHandler struct {
	Employees EmployeeStore
}

func NewEmployeeHandler(employees EmployeeStore) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees}
}

type createEmployeeReq struct {
	FirstName  string          `json:"first_name" validate:"required,max=50"`
	LastName   string          `json:"last_name" validate:"required,max=50"`
	Email      string          `json:"email" validate:"required,email,max=100"`
	Phone      string          `json:"phone" validate:"required,max=20"`
	Position   string          `json:"position" validate:"required,max=50"`
	Department string          `json:"department" validate:"required,max=50"`
	HireDate   model.Date      `json:"hire_date" validate:"required"`
	Salary     decimal.Decimal `json:"salary"`
	IsActive   *bool           `json:"is_active"`
}

type updateEmployeeReq struct {
	FirstName  *string          `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName   *string          `json:"last_name" validate:"omitempty,min=1,max=50"`
	Email      *string          `json:"email" validate:"omitempty,email,max=100"`
	Phone      *string          `json:"phone" validate:"omitempty,min=1,max=20"`
	Position   *string          `json:"position" validate:"omitempty,min=1,max=50"`
	Department *string          `json:"department" validate:"omitempty,min=1,max=50"`
	HireDate   *model.Date      `json:"hire_date"`
	Salary     *decimal.Decimal `json:"salary"`
	IsActive   *bool            `json:"is_active"`
}

// List handles GET /v1/employees?active_only=&skip=&limit=.
func (h *EmployeeHandler) List(c echo.Context) error {
	activeOnly, err := queryBool(c, "active_only")
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Employees.List(ctx, activeOnly, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if req.Salary.IsNegative() {
		return writeError(c, badRequest("salary must not be negative"))
	}
	e := model.Employee{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      req.Email,
		Phone:      strings.TrimSpace(req.Phone),
		Position:   strings.TrimSpace(req.Position),
		Department: strings.TrimSpace(req.Department),
		HireDate:   req.HireDate,
		Salary:     req.Salary,
		IsActive:   true,
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Employees.Create(ctx, &e); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req updateEmployeeReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		return writeError(c, badRequest("salary must not be negative"))
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	setTrimmed(&e.FirstName, req.FirstName)
	setTrimmed(&e.LastName, req.LastName)
	setTrimmed(&e.Email, req.Email)
	setTrimmed(&e.Phone, req.Phone)
	setTrimmed(&e.Position, req.Position)
	setTrimmed(&e.Department, req.Department)
	if req.HireDate != nil && !req.HireDate.IsZero() {
		e.HireDate = *req.HireDate
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if err := h.Employees.Update(ctx, &e); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func setTrimmed(dst, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Employees.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Employee deleted successfully"})
}

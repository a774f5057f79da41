package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         uint64          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	HireDate   Date            `json:"hire_date"`
	Salary     decimal.Decimal `json:"salary"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

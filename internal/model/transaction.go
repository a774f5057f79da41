package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// CategoryBookingPayment tags the income recorded when a booking is paid.
const CategoryBookingPayment = "booking_payment"

// FinancialTransaction mirrors the `financial_transactions` table.
type FinancialTransaction struct {
	ID              uint64          `json:"id"`
	BookingID       *uint64         `json:"booking_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"transaction_type"`
	Category        string          `json:"category"`
	Description     *string         `json:"description,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	TransactionDate Date            `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

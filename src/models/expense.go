package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	CategoryID  int             `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Populated by the categories join on reads.
	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
	CategoryIcon  string `json:"category_icon,omitempty"`
}

type ExpenseRequest struct {
	CategoryID  int             `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
}

type ExpenseStats struct {
	TotalExpenses int             `json:"total_expenses"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

type CategoryStat struct {
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	ExpenseCount  int             `json:"expense_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

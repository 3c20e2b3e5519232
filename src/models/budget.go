package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	CategoryID   int             `json:"category_id"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	CurrentSpent decimal.Decimal `json:"current_spent"`
	MonthYear    string          `json:"month_year"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
	CategoryIcon  string `json:"category_icon,omitempty"`
}

type BudgetRequest struct {
	CategoryID   int             `json:"category_id"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	MonthYear    string          `json:"month_year"`
}

type BudgetOverviewEntry struct {
	Budget
	UsagePercentage decimal.Decimal `json:"usage_percentage"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

type BudgetSummary struct {
	TotalBudgets    int             `json:"total_budgets"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	TotalRemaining  decimal.Decimal `json:"total_remaining"`
	ExceededBudgets int             `json:"exceeded_budgets"`
}

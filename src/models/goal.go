package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
)

type Goal struct {
	ID            int             `json:"id"`
	UserID        int             `json:"user_id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type GoalRequest struct {
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
}

type GoalStats struct {
	TotalGoals         int             `json:"total_goals"`
	ActiveGoals        int             `json:"active_goals"`
	CompletedGoals     int             `json:"completed_goals"`
	PausedGoals        int             `json:"paused_goals"`
	TotalTargetAmount  decimal.Decimal `json:"total_target_amount"`
	TotalCurrentAmount decimal.Decimal `json:"total_current_amount"`
}

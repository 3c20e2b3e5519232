package models

import "time"

const (
	RecommendationTypeSaving    = "saving"
	RecommendationTypeSpending  = "spending"
	RecommendationTypeBudgeting = "budgeting"
	RecommendationTypeGoal      = "goal"
)

type Recommendation struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"user_id"`
	RecommendationText string    `json:"recommendation_text"`
	RecommendationType string    `json:"recommendation_type"`
	IsRead             bool      `json:"is_read"`
	CreatedAt          time.Time `json:"created_at"`
}

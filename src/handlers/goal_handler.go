package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

func parseGoalRequest(r *http.Request) (*models.GoalRequest, *time.Time, error) {
	var req models.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, errors.New("invalid request")
	}
	if len(req.Title) < 3 {
		return nil, nil, errors.New("title must be at least 3 characters")
	}
	if !util.ValidatePositiveAmount(req.TargetAmount) {
		return nil, nil, errors.New("target amount must be positive")
	}
	if req.CurrentAmount.IsNegative() {
		return nil, nil, errors.New("current amount cannot be negative")
	}
	var targetDate *time.Time
	if req.TargetDate != "" {
		d, err := time.Parse(time.DateOnly, req.TargetDate)
		if err != nil {
			return nil, nil, errors.New("target_date must be YYYY-MM-DD")
		}
		targetDate = &d
	}
	return &req, targetDate, nil
}

func CreateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		req, targetDate, err := parseGoalRequest(r)
		if err != nil {
			log.Printf("ERROR: Invalid create goal request for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		goal := &models.Goal{
			UserID:        int(userID),
			Title:         req.Title,
			TargetAmount:  req.TargetAmount,
			CurrentAmount: req.CurrentAmount,
			TargetDate:    targetDate,
			Description:   req.Description,
		}
		created, err := db.CreateGoal(r.Context(), pool, goal)
		if err != nil {
			log.Printf("ERROR: Failed to create goal for user %d: %v", userID, err)
			http.Error(w, "failed to create goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created goal id %d for user %d, title %q", created.ID, userID, created.Title)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllGoals(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		status := r.URL.Query().Get("status")
		if status != "" && !util.ValidGoalStatus(status) {
			http.Error(w, "invalid status filter", http.StatusBadRequest)
			return
		}
		goals, err := db.GetAllGoals(r.Context(), pool, int(userID), status)
		if err != nil {
			log.Printf("ERROR: Failed to get goals for user %d: %v", userID, err)
			http.Error(w, "failed to get goals", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goals)
	}
}

func GetGoalByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		goal, err := db.GetGoalByID(r.Context(), pool, int(userID), goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found for user %d: %v", goalID, userID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goal)
	}
}

// UpdateGoal overwrites the full goal record with caller-supplied values,
// including status and current_amount.
func UpdateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		req, targetDate, err := parseGoalRequest(r)
		if err != nil {
			log.Printf("ERROR: Invalid update goal request for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = models.GoalStatusActive
		}
		if !util.ValidGoalStatus(status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		goal := &models.Goal{
			ID:            goalID,
			UserID:        int(userID),
			Title:         req.Title,
			TargetAmount:  req.TargetAmount,
			CurrentAmount: req.CurrentAmount,
			TargetDate:    targetDate,
			Description:   req.Description,
			Status:        status,
		}
		updated, err := db.UpdateGoal(r.Context(), pool, goal)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "goal not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update goal id %d for user %d: %v", goalID, userID, err)
			http.Error(w, "failed to update goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated goal id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func AddGoalProgress(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		var req struct {
			Amount decimal.Decimal `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode goal progress request for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !util.ValidatePositiveAmount(req.Amount) {
			http.Error(w, "valid amount is required", http.StatusBadRequest)
			return
		}

		newAmount, newStatus, err := db.AddGoalProgress(r.Context(), pool, int(userID), goalID, req.Amount)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "goal not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update progress for goal id %d, user %d: %v", goalID, userID, err)
			http.Error(w, "failed to update goal progress", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Goal id %d progress for user %d: amount %s, status %s", goalID, userID, newAmount, newStatus)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":    "Goal progress updated successfully",
			"new_amount": newAmount,
			"status":     newStatus,
			"completed":  newStatus == models.GoalStatusCompleted,
		})
	}
}

func DeleteGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		err = db.DeleteGoal(r.Context(), pool, int(userID), goalID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "goal not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete goal id %d for user %d: %v", goalID, userID, err)
			http.Error(w, "failed to delete goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted goal id %d for user %d", goalID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "goal deleted"})
	}
}

func GetGoalStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		stats, upcoming, err := db.GetGoalStats(r.Context(), pool, int(userID))
		if err != nil {
			log.Printf("ERROR: Failed to get goal stats for user %d: %v", userID, err)
			http.Error(w, "failed to get goal stats", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"summary":            stats,
			"upcoming_deadlines": upcoming,
		})
	}
}

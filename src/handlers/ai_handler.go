package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/advisor"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

func GenerateBudgetingRecommendation(adv *advisor.Advisor, pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		if adv == nil {
			http.Error(w, "advice generation is not configured", http.StatusServiceUnavailable)
			return
		}
		recommendation, err := adv.BudgetingRecommendation(r.Context(), pool, int(userID))
		if err != nil {
			log.Printf("ERROR: Failed to generate budgeting recommendation for user %d: %v", userID, err)
			http.Error(w, "failed to generate recommendation", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Generated budgeting recommendation for user %d", userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":        "Budgeting recommendation generated successfully",
			"recommendation": recommendation,
		})
	}
}

func GenerateSpendingInsights(adv *advisor.Advisor, pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		if adv == nil {
			http.Error(w, "advice generation is not configured", http.StatusServiceUnavailable)
			return
		}
		insights, err := adv.SpendingInsights(r.Context(), pool, int(userID))
		if err != nil {
			log.Printf("ERROR: Failed to generate spending insights for user %d: %v", userID, err)
			http.Error(w, "failed to generate insights", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Generated spending insights for user %d", userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":  "Spending insights generated successfully",
			"insights": insights,
		})
	}
}

func GenerateGoalAdvice(adv *advisor.Advisor, pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		if adv == nil {
			http.Error(w, "advice generation is not configured", http.StatusServiceUnavailable)
			return
		}
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		advice, err := adv.GoalAdvice(r.Context(), pool, int(userID), goalID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "goal not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to generate goal advice for user %d, goal %d: %v", userID, goalID, err)
			http.Error(w, "failed to generate advice", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Generated goal advice for user %d, goal %d", userID, goalID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Goal advice generated successfully",
			"advice":  advice,
		})
	}
}

func GetRecommendations(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var filter db.RecommendationFilter
		filter.Type = r.URL.Query().Get("type")
		if filter.Type != "" {
			switch filter.Type {
			case models.RecommendationTypeSaving, models.RecommendationTypeSpending,
				models.RecommendationTypeBudgeting, models.RecommendationTypeGoal:
			default:
				http.Error(w, "invalid recommendation type", http.StatusBadRequest)
				return
			}
		}
		filter.UnreadOnly = r.URL.Query().Get("unread_only") == "true"
		filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
		filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

		recs, err := db.GetRecommendations(r.Context(), pool, int(userID), filter)
		if err != nil {
			log.Printf("ERROR: Failed to get recommendations for user %d: %v", userID, err)
			http.Error(w, "failed to get recommendations", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recs)
	}
}

func MarkRecommendationRead(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		recIDStr := chi.URLParam(r, "recommendation_id")
		recID, err := strconv.Atoi(recIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid recommendation id param: %s", recIDStr)
			http.Error(w, "invalid recommendation id", http.StatusBadRequest)
			return
		}
		err = db.MarkRecommendationRead(r.Context(), pool, int(userID), recID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "recommendation not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to mark recommendation %d read for user %d: %v", recID, userID, err)
			http.Error(w, "failed to mark recommendation read", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "recommendation marked as read"})
	}
}

func DeleteRecommendation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		recIDStr := chi.URLParam(r, "recommendation_id")
		recID, err := strconv.Atoi(recIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid recommendation id param: %s", recIDStr)
			http.Error(w, "invalid recommendation id", http.StatusBadRequest)
			return
		}
		err = db.DeleteRecommendation(r.Context(), pool, int(userID), recID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "recommendation not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete recommendation %d for user %d: %v", recID, userID, err)
			http.Error(w, "failed to delete recommendation", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted recommendation id %d for user %d", recID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "recommendation deleted"})
	}
}

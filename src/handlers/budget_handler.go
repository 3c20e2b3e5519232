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

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/ledger"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

func validateBudgetRequest(req *models.BudgetRequest) error {
	if req.CategoryID <= 0 {
		return errors.New("valid category id is required")
	}
	if !util.ValidatePositiveAmount(req.MonthlyLimit) {
		return errors.New("monthly limit must be positive")
	}
	if !util.ValidateMonthYear(req.MonthYear) {
		return errors.New("month_year must be YYYY-MM")
	}
	return nil
}

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req models.BudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validateBudgetRequest(&req); err != nil {
			log.Printf("ERROR: Invalid create budget request for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		budget := &models.Budget{
			UserID:       int(userID),
			CategoryID:   req.CategoryID,
			MonthlyLimit: req.MonthlyLimit,
			MonthYear:    req.MonthYear,
		}
		created, err := db.CreateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created budget id %d for user %d, category %d, month %s", created.ID, userID, created.CategoryID, created.MonthYear)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllBudgetsForUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		monthYear := r.URL.Query().Get("month_year")
		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, int(userID), monthYear)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

func GetBudgetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		budget, err := db.GetBudgetByID(r.Context(), pool, int(userID), budgetID)
		if err != nil {
			log.Printf("ERROR: Budget id %d not found for user %d: %v", budgetID, userID, err)
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budget)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		var req models.BudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validateBudgetRequest(&req); err != nil {
			log.Printf("ERROR: Invalid update budget request for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		budget := &models.Budget{
			ID:           budgetID,
			UserID:       int(userID),
			CategoryID:   req.CategoryID,
			MonthlyLimit: req.MonthlyLimit,
			MonthYear:    req.MonthYear,
		}
		updated, err := db.UpdateBudget(r.Context(), pool, budget)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "budget not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update budget id %d for user %d: %v", budgetID, userID, err)
			http.Error(w, "failed to update budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated budget id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		err = db.DeleteBudget(r.Context(), pool, int(userID), budgetID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "budget not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			http.Error(w, "failed to delete budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted budget id %d for user %d", budgetID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}

func GetBudgetOverview(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		month := ledger.MonthKey(time.Now())
		entries, summary, err := db.GetBudgetOverview(r.Context(), pool, int(userID), month)
		if err != nil {
			log.Printf("ERROR: Failed to get budget overview for user %d: %v", userID, err)
			http.Error(w, "failed to get budget overview", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"budgets": entries,
			"summary": summary,
			"month":   month,
		})
	}
}

func GetCategoriesWithoutBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		monthYear := chi.URLParam(r, "month_year")
		if !util.ValidateMonthYear(monthYear) {
			http.Error(w, "month_year must be YYYY-MM", http.StatusBadRequest)
			return
		}
		categories, err := db.GetCategoriesWithoutBudget(r.Context(), pool, int(userID), monthYear)
		if err != nil {
			log.Printf("ERROR: Failed to get missing budget categories for user %d: %v", userID, err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}
